package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stethoproject/stpack/internal/output"
)

// displayedError wraps an error that has already been printed to the user.
// Execute() checks for this to avoid double-printing.
type displayedError struct {
	err error
}

func (e *displayedError) Error() string { return e.err.Error() }
func (e *displayedError) Unwrap() error { return e.err }

// displayed wraps an error to mark it as already shown to the user.
func displayed(err error) error {
	if err == nil {
		return nil
	}
	return &displayedError{err: err}
}

// flags holds per-invocation flag state (no package globals).
type flags struct {
	json    bool
	quiet   bool
	verbose bool
	anchor  string
}

func (f *flags) outputMode() output.Mode {
	if f.json {
		return output.ModeJSON
	}
	if f.quiet {
		return output.ModeQuiet
	}
	return output.ModeText
}

// exitCodeError wraps an exit code for propagation through cobra.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return ""
}

// Execute runs the CLI with the given version and args. Returns exit code.
func Execute(version string, args []string) int {
	root := newRootCmd(version)
	root.SetArgs(args)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		// Propagate the packaging tool's exit code.
		var ece *exitCodeError
		if errors.As(err, &ece) {
			return ece.code
		}

		// If the error was already displayed inline, don't print again.
		var de *displayedError
		if !errors.As(err, &de) {
			// Safety net: always print something so users never see silent failures.
			w := output.New(output.ModeText)
			w.Error(err.Error(), "")
		}
		return 1
	}
	return 0
}

func newRootCmd(version string) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "stpack <command>",
		Short: "Package the stetho Python scripting distribution",
		Long: `stpack resolves the stetho distribution version from the Android
project's gradle.properties and assembles the package descriptor the
external packaging tool consumes.`,
		Example: `  stpack version            # resolve and print VERSION_NAME
  stpack show               # render the full package descriptor
  stpack show --format yaml # render as YAML
  stpack build              # write the descriptor and run the packager
  stpack check              # validate the project before packaging`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			output.SetupSlog(f.verbose)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolVarP(&f.json, "json", "j", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "suppress stpack messages, show only tool output")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&f.anchor, "anchor", "", "override the anchor path used to locate gradle.properties")

	root.AddCommand(
		newVersionCmd(f),
		newShowCmd(f),
		newBuildCmd(f),
		newCheckCmd(f),
	)

	root.SetHelpFunc(renderHelp)

	return root
}
