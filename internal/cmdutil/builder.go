package cmdutil

import (
	"github.com/lbcm/coursebuild/internal/cmdtypes"
	"github.com/lbcm/coursebuild/internal/course"
)

// NewBuilder constructs a course builder from the resolved global
// configuration with the command's build flags applied.
func NewBuilder(cfg *cmdtypes.GlobalConfig, flags *BuildFlags) (*course.Builder, error) {
	opts := course.OptionsFromConfig(cfg.Effective())
	if flags != nil {
		if flags.Output != "" {
			opts.OutputDir = flags.Output
		}
		if flags.NoCleanup {
			opts.CleanupTemp = false
		}
	}
	return course.New(opts)
}
