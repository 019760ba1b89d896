// Package env holds the endpoints of the platform, set at build time.
//
// Build with
//
//	go build -ldflags "-X github.com/opst/cloudconsole/pkg/configs/env.ApiRoot=https://..." ...
//
// Each of them can be overridden by CONSOLE_* environment variables, or a .env file.
package env

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// build-time values.
var (
	ApiRoot          string
	ApiRootV1        string
	KeycloakURL      string
	KeycloakRealm    string
	KeycloakClientID string
)

const (
	KeyApiRoot          = "CONSOLE_API_ROOT"
	KeyApiRootV1        = "CONSOLE_API_ROOT_V1"
	KeyKeycloakURL      = "CONSOLE_KEYCLOAK_URL"
	KeyKeycloakRealm    = "CONSOLE_KEYCLOAK_REALM"
	KeyKeycloakClientID = "CONSOLE_KEYCLOAK_CLIENT_ID"
	KeyToken            = "CONSOLE_TOKEN"
)

// DefaultFile is read by Load when no files are given. It is fine that it does not exist.
const DefaultFile = ".env"

type Identity struct {
	URL      string
	Realm    string
	ClientID string
}

type Env struct {
	ApiRoot   string
	ApiRootV1 string
	Identity  Identity

	// Token is a bearer token given by environment. Empty if not.
	Token string
}

// Lookup finds a value of environment variable.
type Lookup func(key string) (string, bool)

// FromLookup builds Env from build-time values overridden by lookup.
func FromLookup(lookup Lookup) Env {
	get := func(key string, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}
	return Env{
		ApiRoot:   get(KeyApiRoot, ApiRoot),
		ApiRootV1: get(KeyApiRootV1, ApiRootV1),
		Identity: Identity{
			URL:      get(KeyKeycloakURL, KeycloakURL),
			Realm:    get(KeyKeycloakRealm, KeycloakRealm),
			ClientID: get(KeyKeycloakClientID, KeycloakClientID),
		},
		Token: get(KeyToken, ""),
	}
}

// Load builds Env from the process environment and dotenv files.
//
// The process environment wins over files. Files do not modify the process environment.
//
// # Args
//
// - files: dotenv files. If none, DefaultFile is read when it exists.
func Load(files ...string) (Env, error) {
	fromFile := map[string]string{}
	if len(files) == 0 {
		m, err := godotenv.Read(DefaultFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
		if m != nil {
			fromFile = m
		}
	} else {
		m, err := godotenv.Read(files...)
		if err != nil {
			return Env{}, err
		}
		fromFile = m
	}

	return FromLookup(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fromFile[key]
		return v, ok
	}), nil
}
