package profiles_test

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	prof "github.com/opst/cloudconsole/cmd/console/config/profiles"
	"github.com/opst/cloudconsole/pkg/utils/try"
)

func TestConfig(t *testing.T) {
	t.Run("unmarshalling works well", func(t *testing.T) {
		conf, err := prof.Unmarshall([]byte(`
profname:
    apiRoot: "https://api.example.com/v2"
    apiRootV1: "https://api.example.com/v1"
    identity:
        url: "https://iam.example.com"
        realm: cloud
        clientId: console
    tokenFile: /var/run/console/token
    cert:
        ca: BASE64_ENCODED_CERT
`))
		if err != nil {
			t.Fatalf("failed to unmarshal.: %+v", err)
		}
		p, ok := conf["profname"]
		if !ok {
			t.Fatal("config has not profile")
		}

		expected := prof.Profile{
			ApiRoot:   "https://api.example.com/v2",
			ApiRootV1: "https://api.example.com/v1",
			Identity: prof.Identity{
				URL: "https://iam.example.com", Realm: "cloud", ClientID: "console",
			},
			TokenFile: "/var/run/console/token",
			Cert:      prof.Cert{CA: "BASE64_ENCODED_CERT"},
		}
		if *p != expected {
			t.Errorf("profile unmatch.\n===actual===\n%+v\n===expected===\n%+v", *p, expected)
		}
	})
}

func TestProfile(t *testing.T) {
	cacert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("not a real certificate")})

	for name, testcase := range map[string]struct {
		prof      *prof.Profile
		toBeValid error
	}{
		"all value is valid, it is valid": {
			prof: &prof.Profile{
				ApiRoot:   "https://api.example.com/v2",
				ApiRootV1: "https://api.example.com/v1",
				Identity:  prof.Identity{URL: "https://iam.example.com"},
				Cert:      prof.Cert{CA: base64.StdEncoding.EncodeToString(cacert)},
			},
			toBeValid: nil,
		},
		"no optional values is ok": {
			prof:      &prof.Profile{ApiRoot: "https://api.example.com/v2"},
			toBeValid: nil,
		},
		"when api url is broken, it is not valid": {
			prof:      &prof.Profile{ApiRoot: "not url"},
			toBeValid: prof.ErrProfileInvalid,
		},
		"when v1 api url is broken, it is not valid": {
			prof:      &prof.Profile{ApiRoot: "https://api.example.com/v2", ApiRootV1: "/v1"},
			toBeValid: prof.ErrProfileInvalid,
		},
		"when identity url is broken, it is not valid": {
			prof: &prof.Profile{
				ApiRoot: "https://api.example.com/v2", Identity: prof.Identity{URL: "iam"},
			},
			toBeValid: prof.ErrProfileInvalid,
		},
		"when CA is not PEM, it is not valid": {
			prof: &prof.Profile{
				ApiRoot: "https://api.example.com/v2",
				Cert:    prof.Cert{CA: base64.StdEncoding.EncodeToString([]byte("broken cert"))},
			},
			toBeValid: prof.ErrProfileInvalid,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if !errors.Is(testcase.prof.Verify(), testcase.toBeValid) {
				t.Errorf(
					"profile verification wrong. toBeValid?(=%v) content = %+v",
					testcase.toBeValid, testcase.prof,
				)
			}
		})
	}
}

func TestProfileStore(t *testing.T) {
	t.Run("missing store is ErrProfileStoreNotFound", func(t *testing.T) {
		_, err := prof.LoadProfileStore(filepath.Join(t.TempDir(), "nothing"))
		if !errors.Is(err, prof.ErrProfileStoreNotFound) {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("saved store can be loaded, and the backup is removed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".console", "profile")
		store := prof.ProfileStore{
			"a": {ApiRoot: "https://a.example.com"},
		}
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		store["b"] = &prof.Profile{ApiRoot: "https://b.example.com"}
		if err := store.Save(path); err != nil {
			t.Fatal(err)
		}

		got := try.To(prof.LoadProfileStore(path)).OrFatal(t)
		if len(got) != 2 || got["a"].ApiRoot != "https://a.example.com" || got["b"].ApiRoot != "https://b.example.com" {
			t.Errorf("unexpected store: %+v", got)
		}

		stat := try.To(os.Stat(path)).OrFatal(t)
		if perm := stat.Mode().Perm(); perm != 0600 {
			t.Errorf("unexpected permission: %o", perm)
		}
		if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
			t.Errorf("backup remains: %v", err)
		}
	})
	t.Run("Get reports missing profile", func(t *testing.T) {
		store := prof.ProfileStore{"a": {ApiRoot: "https://a.example.com"}, "nil": nil}
		if p := try.To(store.Get("a")).OrFatal(t); p.ApiRoot != "https://a.example.com" {
			t.Errorf("unexpected profile: %+v", p)
		}
		for _, name := range []string{"b", "nil"} {
			_, err := store.Get(name)
			if !errors.Is(err, prof.ErrProfileNotFound) || !strings.Contains(err.Error(), "'"+name+"'") {
				t.Errorf("%s: unexpected error: %v", name, err)
			}
		}
	})
}
