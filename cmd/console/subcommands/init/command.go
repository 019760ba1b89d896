package init

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	prof "github.com/opst/cloudconsole/cmd/console/config/profiles"
	"github.com/opst/cloudconsole/cmd/console/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_PROFILE_FILE = "PROFILE_FILE"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Initialize this directory to use a cloud console profile.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_PROFILE_FILE, Required: true,
				Help: "filepath to profile file, which you received from your admin.",
			},
		},
		common.NewTaskWithCommonFlag(Task(".")),
		flarc.WithDescription(`
Register a new profile into your profile store.

"profile" is a yaml file which contains endpoints of the platform and its identity provider.
"{{ .Command }}" registers the given profile into your profile store,
and writes the name of the profile into ".consoleprofile" in the current directory.

The name of the profile is given by "--profile".
`),
	)
}

// Task registers a profile file, and marks workdir to use it.
func Task(workdir string) common.TaskWithCommonFlag[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		profFile := cl.Args()[ARG_PROFILE_FILE][0]

		profStore, err := prof.LoadProfileStore(cf.ProfileStore)
		if errors.Is(err, prof.ErrProfileStoreNotFound) {
			// ok.
			profStore = prof.ProfileStore{}
		} else if err != nil {
			return fmt.Errorf("failed to load profile store (%s): %w", cf.ProfileStore, err)
		}

		profName := cf.Profile
		if profName == "" {
			profName = common.DefaultProfile
		}

		newProf := new(prof.Profile)
		{
			content, err := os.ReadFile(profFile)
			if err != nil {
				return fmt.Errorf("failed to read profile file (%s): %w", profFile, err)
			}
			if err := yaml.Unmarshal(content, newProf); err != nil {
				return fmt.Errorf("failed to parse profile file (%s): %w", profFile, err)
			}
		}
		if err := newProf.Verify(); err != nil {
			return fmt.Errorf("%s: %w", profFile, err)
		}

		profStore[profName] = newProf
		if err := profStore.Save(cf.ProfileStore); err != nil {
			return fmt.Errorf("failed to save profile store (%s): %w", cf.ProfileStore, err)
		}
		logger.Printf("profile %s is saved to %s", profName, cf.ProfileStore)

		marker := filepath.Join(workdir, common.ProfileMarker)
		if err := os.WriteFile(marker, []byte(profName), os.FileMode(0600)); err != nil {
			return fmt.Errorf("failed to write %s: %w", marker, err)
		}
		return nil
	}
}
