package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stethoproject/stpack/internal/preflight"
)

func newCheckCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the project before packaging",
		Long: `Runs the preflight checks a build would run: the properties file
exists and parses, the version key is present, the configured packaging
tool is on PATH, and the dist directory is usable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := resolveCmdContext(f.outputMode(), f)
			if err != nil {
				return err
			}
			return runCheck(cc)
		},
	}
}

func runCheck(cc *cmdContext) error {
	w := cc.Output

	failures := preflight.RunAll(
		cc.PropertiesPath,
		cc.Config.Properties.Key,
		cc.Config.Packager.Command,
		cc.Config.Packager.DistDir,
	)
	if len(failures) > 0 {
		for _, r := range failures {
			w.Error(r.Message, r.Fix)
		}
		return displayed(fmt.Errorf("preflight checks failed"))
	}

	version, err := cc.resolveVersion()
	if err != nil {
		// RunAll already validated the file; a failure here is unexpected.
		return printResolveError(w, err)
	}

	w.Infof("ok: %s resolves %s = %s", cc.PropertiesPath, cc.Config.Properties.Key, version)
	return nil
}
