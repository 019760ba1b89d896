package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/opst/cloudconsole/cmd/console/config/profiles"
	"github.com/opst/cloudconsole/cmd/console/subcommands/logger"
	"github.com/opst/cloudconsole/pkg/auth"
	"github.com/opst/cloudconsole/pkg/configs/env"
	"github.com/opst/cloudconsole/pkg/rest"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		return task(
			ctx,
			logger.ForCommand(cl.Stderr(), cl.Fullname()),
			commonFlag,
			cl,
			newpos,
		)
	}
}

// Task is a task which talks to the platform.
type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	client rest.Client,
	cl flarc.Commandline[T],
	params []any,
) error

// SessionTask is a Task which also needs the state of authentication.
type SessionTask[T any] func(
	ctx context.Context,
	logger *log.Logger,
	client rest.Client,
	session auth.Session,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewSessionTask(func(
		ctx context.Context,
		logger *log.Logger,
		client rest.Client,
		_ auth.Session,
		cl flarc.Commandline[T],
		params []any,
	) error {
		return task(ctx, logger, client, cl, params)
	})
}

func NewSessionTask[T any](task SessionTask[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		client, session, err := Connect(ctx, logger, commonFlag)
		if err != nil {
			return err
		}
		return task(ctx, logger, client, session, cl, params)
	})
}

// Connect builds a client and a session from the profile and the environment.
//
// Values in the profile win over environment, except the token in CONSOLE_TOKEN.
func Connect(ctx context.Context, logger *log.Logger, commonFlag CommonFlags) (rest.Client, auth.Session, error) {
	e, err := loadEnv(commonFlag.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to load env file (%s)", err, commonFlag.Env)
	}

	prof, err := resolveProfile(commonFlag, e)
	if err != nil {
		return nil, nil, err
	}

	var token auth.TokenSource = auth.StaticToken(e.Token)
	if e.Token == "" && prof.TokenFile != "" {
		ft, err := auth.NewFileToken(ctx, prof.TokenFile, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: cannot read token file (%s)", err, prof.TokenFile)
		}
		token = ft
	}

	client, err := rest.NewClient(rest.Config{
		ApiRoot:   prof.ApiRoot,
		ApiRootV1: prof.ApiRootV1,
		Token:     token,
		CA:        prof.Cert.CA,
	})
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%w: failed to create client. Your profile (%s in %s) can be broken.\n\nRemove it and try `console init` again",
			err, commonFlag.Profile, commonFlag.ProfileStore,
		)
	}

	var options []auth.SessionOption
	if issuer := Issuer(prof.Identity); issuer != "" {
		options = append(options, auth.WithIssuer(issuer))
	}
	return client, auth.NewSession(token, options...), nil
}

// Issuer of tokens for the identity. Empty if url or realm is not known.
func Issuer(id profiles.Identity) string {
	if id.URL == "" || id.Realm == "" {
		return ""
	}
	return strings.TrimSuffix(id.URL, "/") + "/realms/" + id.Realm
}

func loadEnv(file string) (env.Env, error) {
	if file != "" {
		if _, err := os.Stat(file); err == nil {
			return env.Load(file)
		}
	}
	return env.FromLookup(os.LookupEnv), nil
}

func resolveProfile(commonFlag CommonFlags, e env.Env) (profiles.Profile, error) {
	var prof profiles.Profile

	store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
	switch {
	case err == nil:
		if p, err := store.Get(commonFlag.Profile); err == nil {
			prof = *p
		} else if e.ApiRoot == "" {
			return prof, fmt.Errorf("%w in the profile store (%s)", err, commonFlag.ProfileStore)
		}
	case errors.Is(err, profiles.ErrProfileStoreNotFound):
		if e.ApiRoot == "" {
			return prof, fmt.Errorf(
				"%w: profile store (%s) is not found. Please try `console init` first, or set %s",
				err, commonFlag.ProfileStore, env.KeyApiRoot,
			)
		}
	default:
		return prof, fmt.Errorf(
			"%w: failed to load profile store (%s)", err, commonFlag.ProfileStore,
		)
	}

	if prof.ApiRoot == "" {
		prof.ApiRoot = e.ApiRoot
	}
	if prof.ApiRootV1 == "" {
		prof.ApiRootV1 = e.ApiRootV1
	}
	if prof.Identity.URL == "" {
		prof.Identity.URL = e.Identity.URL
	}
	if prof.Identity.Realm == "" {
		prof.Identity.Realm = e.Identity.Realm
	}
	if prof.Identity.ClientID == "" {
		prof.Identity.ClientID = e.Identity.ClientID
	}
	return prof, nil
}
