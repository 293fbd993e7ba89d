package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stethoproject/stpack/internal/output"
)

// versionJSON is the structured output for `stpack version --json`.
type versionJSON struct {
	Version    string `json:"version"`
	Properties string `json:"properties"`
}

func newVersionCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Resolve and print the distribution version",
		Long: `Reads VERSION_NAME from the project's gradle.properties and prints
the value verbatim, with no format validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := resolveCmdContext(f.outputMode(), f)
			if err != nil {
				return err
			}
			return runVersion(cc)
		},
	}
}

func runVersion(cc *cmdContext) error {
	version, err := cc.resolveVersion()
	if err != nil {
		return printResolveError(cc.Output, err)
	}

	if cc.Output.Mode() == output.ModeJSON {
		data, err := json.Marshal(versionJSON{
			Version:    version,
			Properties: cc.PropertiesPath,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Output.Raw(), string(data))
		return nil
	}

	fmt.Fprintln(cc.Output.Raw(), version)
	return nil
}
