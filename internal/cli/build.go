package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/stethoproject/stpack/internal/exec"
	"github.com/stethoproject/stpack/internal/manifest"
	"github.com/stethoproject/stpack/internal/output"
	"github.com/stethoproject/stpack/internal/preflight"
)

func newBuildCmd(f *flags) *cobra.Command {
	var (
		tool    string
		capture bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the descriptor and run the packaging tool",
		Long: `Resolves the version, writes the package descriptor into the dist
directory, and hands it to the external packaging tool configured via
packager.command (or --tool). The tool's exit code becomes stpack's
exit code. With no tool configured, build stops after the descriptor.`,
		Example: `  stpack build
  stpack build --tool "python3 -m build --sdist"
  stpack build --capture   # buffer tool output, replay only on failure`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := resolveCmdContext(f.outputMode(), f)
			if err != nil {
				return err
			}
			argv := cc.Config.Packager.Command
			if tool != "" {
				argv = strings.Fields(tool)
			}
			return runBuild(cmd.Context(), cc, argv, capture)
		},
	}

	cmd.Flags().StringVar(&tool, "tool", "", "packaging tool command, overrides packager.command")
	cmd.Flags().BoolVar(&capture, "capture", false, "buffer tool output and replay it only on failure")

	return cmd
}

func runBuild(ctx context.Context, cc *cmdContext, argv []string, capture bool) error {
	w := cc.Output

	version, err := cc.resolveVersion()
	if err != nil {
		return printResolveError(w, err)
	}

	desc := manifest.Build(version)
	w.Infof("Version is %s", version)

	descPath, err := desc.Write(cc.Config.Packager.DistDir)
	if err != nil {
		return err
	}
	w.Infof("descriptor written to %s", descPath)

	if len(argv) == 0 {
		w.Hint("configure packager.command in .stpack.toml (or pass --tool) to run a packaging tool")
		return nil
	}

	if r := preflight.CheckPackager(argv); !r.OK {
		w.Error(r.Message, r.Fix)
		return displayed(fmt.Errorf("preflight checks failed"))
	}

	// The descriptor path is appended so the tool knows what to package.
	argv = append(argv, descPath)
	w.Infof("running: %s", strings.Join(argv, " "))
	w.Separator()

	res, err := runTool(ctx, cc, argv, capture)
	if err != nil {
		return err
	}

	w.Separator()
	w.Infof("done (exit %d) in %s", res.ExitCode, res.Duration().Truncate(time.Millisecond))

	if res.ExitCode != 0 {
		return &exitCodeError{code: res.ExitCode}
	}
	return nil
}

// runTool executes the packaging tool, either streaming its output or
// capturing it behind a spinner and replaying on failure.
func runTool(ctx context.Context, cc *cmdContext, argv []string, capture bool) (*exec.RunResult, error) {
	opts := exec.RunOpts{Argv: argv}

	if !capture {
		stdout := newStreamWriter(cc.Output)
		return cc.RunTool(ctx, opts, stdout, os.Stderr)
	}

	var buf bytes.Buffer
	var spin *spinner.Spinner
	if cc.Output.Mode() == output.ModeText && output.SupportsColor(os.Stderr) {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " packaging..."
		spin.Start()
	}

	res, err := cc.RunTool(ctx, opts, &buf, &buf)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		cc.Output.Stream(buf.Bytes())
		return nil, err
	}
	if res.ExitCode != 0 {
		cc.Output.Stream(buf.Bytes())
	}
	return res, nil
}

// streamWriter routes raw tool output through the Writer so JSON mode
// stays structured.
type streamWriter struct {
	w *output.Writer
}

func newStreamWriter(w *output.Writer) *streamWriter {
	return &streamWriter{w: w}
}

func (s *streamWriter) Write(p []byte) (int, error) {
	s.w.Stream(p)
	return len(p), nil
}
