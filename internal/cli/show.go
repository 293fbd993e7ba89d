package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stethoproject/stpack/internal/manifest"
	"github.com/stethoproject/stpack/internal/output"
)

func newShowCmd(f *flags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Render the package descriptor without building",
		Long: `Resolves the version and renders the full package descriptor: the
fixed stetho metadata merged with the resolved version. No files are
written and no packaging tool runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := resolveCmdContext(f.outputMode(), f)
			if err != nil {
				return err
			}
			if f.json {
				format = "json"
			}
			return runShow(cc, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json, or yaml")

	return cmd
}

func runShow(cc *cmdContext, format string) error {
	version, err := cc.resolveVersion()
	if err != nil {
		return printResolveError(cc.Output, err)
	}

	desc := manifest.Build(version)
	cc.Output.Infof("Version is %s", version)

	var data []byte
	switch format {
	case "text":
		if cc.Output.Mode() != output.ModeJSON {
			fmt.Fprint(cc.Output.Raw(), desc.Render())
			return nil
		}
		// --json wins over the default format.
		data, err = desc.EncodeJSON()
	case "json":
		data, err = desc.EncodeJSON()
	case "yaml":
		data, err = desc.EncodeYAML()
	default:
		return fmt.Errorf("unknown format %q (must be text, json, or yaml)", format)
	}
	if err != nil {
		return err
	}
	_, err = cc.Output.Raw().Write(data)
	return err
}
