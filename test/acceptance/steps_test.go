//go:build acceptance

package acceptance

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// ---------------------------------------------------------------------------
// Scenario context — fresh per scenario, passed via context.Context
// ---------------------------------------------------------------------------

type scenarioCtxKey struct{}

type scenarioCtx struct {
	projectDir string // temp project root holding gradle.properties
	anchorPath string // <projectDir>/scripts/dist/stpack
	stdout     string
	stderr     string
	exitCode   int
}

func scFrom(ctx context.Context) *scenarioCtx {
	return ctx.Value(scenarioCtxKey{}).(*scenarioCtx)
}

func binPath() string {
	if bin := os.Getenv("STPACK_BIN"); bin != "" {
		return bin
	}
	return "stpack"
}

// ---------------------------------------------------------------------------
// GIVEN steps
// ---------------------------------------------------------------------------

func aProjectWithProperties(ctx context.Context, contents string) (context.Context, error) {
	sc := scFrom(ctx)
	if err := os.WriteFile(filepath.Join(sc.projectDir, "gradle.properties"), []byte(contents+"\n"), 0o644); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func aProjectWithoutProperties(ctx context.Context) (context.Context, error) {
	return ctx, nil
}

// ---------------------------------------------------------------------------
// WHEN steps
// ---------------------------------------------------------------------------

func iRun(ctx context.Context, command string) (context.Context, error) {
	return runBinary(ctx, command, nil)
}

func iRunWithFailingPackager(ctx context.Context, command string, code int) (context.Context, error) {
	sc := scFrom(ctx)
	script := filepath.Join(sc.projectDir, "packager.sh")
	contents := fmt.Sprintf("#!/bin/sh\nexit %d\n", code)
	if err := os.WriteFile(script, []byte(contents), 0o755); err != nil {
		return ctx, err
	}
	return runBinary(ctx, command, []string{"--tool", script})
}

func runBinary(ctx context.Context, command string, extraArgs []string) (context.Context, error) {
	sc := scFrom(ctx)

	fields := strings.Fields(command)
	if len(fields) == 0 || fields[0] != "stpack" {
		return ctx, fmt.Errorf("command must start with stpack: %q", command)
	}
	args := append(fields[1:], "--anchor", sc.anchorPath)
	args = append(args, extraArgs...)

	cmd := exec.Command(binPath(), args...)
	cmd.Dir = sc.projectDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	sc.stdout = stdout.String()
	sc.stderr = stderr.String()
	sc.exitCode = cmd.ProcessState.ExitCode()
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			return ctx, fmt.Errorf("running %s: %w", binPath(), err)
		}
	}
	return ctx, nil
}

// ---------------------------------------------------------------------------
// THEN steps
// ---------------------------------------------------------------------------

func theExitCodeIs(ctx context.Context, want int) error {
	sc := scFrom(ctx)
	if sc.exitCode != want {
		return fmt.Errorf("exit code %d, want %d\nstdout:\n%s\nstderr:\n%s", sc.exitCode, want, sc.stdout, sc.stderr)
	}
	return nil
}

func stdoutContains(ctx context.Context, want string) error {
	sc := scFrom(ctx)
	if !strings.Contains(sc.stdout, want) {
		return fmt.Errorf("stdout %q does not contain %q", sc.stdout, want)
	}
	return nil
}

func stderrContains(ctx context.Context, want string) error {
	sc := scFrom(ctx)
	if !strings.Contains(sc.stderr, want) {
		return fmt.Errorf("stderr %q does not contain %q", sc.stderr, want)
	}
	return nil
}

func descriptorOutput(ctx context.Context) (map[string]any, error) {
	sc := scFrom(ctx)
	var desc map[string]any
	if err := json.Unmarshal([]byte(sc.stdout), &desc); err != nil {
		return nil, fmt.Errorf("stdout is not a JSON descriptor: %w\n%s", err, sc.stdout)
	}
	return desc, nil
}

func descriptorHasVersion(ctx context.Context, want string) error {
	desc, err := descriptorOutput(ctx)
	if err != nil {
		return err
	}
	if desc["version"] != want {
		return fmt.Errorf("descriptor version %v, want %q", desc["version"], want)
	}
	return nil
}

func descriptorHasDumpappScript(ctx context.Context) error {
	desc, err := descriptorOutput(ctx)
	if err != nil {
		return err
	}
	eps, ok := desc["entry_points"].(map[string]any)
	if !ok {
		return fmt.Errorf("descriptor has no entry_points: %v", desc)
	}
	scripts, ok := eps["console_scripts"].([]any)
	if !ok || len(scripts) != 1 {
		return fmt.Errorf("want exactly one console script, got %v", eps["console_scripts"])
	}
	if scripts[0] != "dumpapp=stetho:dumpapp_main" {
		return fmt.Errorf("console script %v, want dumpapp=stetho:dumpapp_main", scripts[0])
	}
	return nil
}

func distDirContains(ctx context.Context, name string) error {
	sc := scFrom(ctx)
	path := filepath.Join(sc.projectDir, "dist", name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected %s: %w", path, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

func InitializeScenario(sctx *godog.ScenarioContext) {
	sctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		dir, err := os.MkdirTemp("", "stpack-acceptance-*")
		if err != nil {
			return ctx, err
		}
		anchorDir := filepath.Join(dir, "scripts", "dist")
		if err := os.MkdirAll(anchorDir, 0o755); err != nil {
			return ctx, err
		}
		sc := &scenarioCtx{
			projectDir: dir,
			anchorPath: filepath.Join(anchorDir, "stpack"),
		}
		return context.WithValue(ctx, scenarioCtxKey{}, sc), nil
	})
	sctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if sc, ok := ctx.Value(scenarioCtxKey{}).(*scenarioCtx); ok {
			os.RemoveAll(sc.projectDir)
		}
		return ctx, err
	})

	sctx.Step(`^a project with gradle\.properties containing "([^"]*)"$`, aProjectWithProperties)
	sctx.Step(`^a project without gradle\.properties$`, aProjectWithoutProperties)
	sctx.Step(`^I run "([^"]*)"$`, iRun)
	sctx.Step(`^I run "([^"]*)" with a packager that exits (\d+)$`, iRunWithFailingPackager)
	sctx.Step(`^the exit code is (\d+)$`, theExitCodeIs)
	sctx.Step(`^stdout contains "([^"]*)"$`, stdoutContains)
	sctx.Step(`^stderr contains "([^"]*)"$`, stderrContains)
	sctx.Step(`^the descriptor output has version "([^"]*)"$`, descriptorHasVersion)
	sctx.Step(`^the descriptor output has the dumpapp console script$`, descriptorHasDumpappScript)
	sctx.Step(`^the dist directory contains "([^"]*)"$`, distDirContains)
}
