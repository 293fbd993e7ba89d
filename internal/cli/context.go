package cli

import (
	"context"
	"io"
	"os"

	"github.com/stethoproject/stpack/internal/config"
	"github.com/stethoproject/stpack/internal/dist"
	stexec "github.com/stethoproject/stpack/internal/exec"
	"github.com/stethoproject/stpack/internal/output"
	"github.com/stethoproject/stpack/internal/project"
)

// ResolveFunc reads a version key from a properties file.
type ResolveFunc func(path, key string) (string, error)

// RunToolFunc runs the external packaging tool.
type RunToolFunc func(ctx context.Context, opts stexec.RunOpts, stdout, stderr io.Writer) (*stexec.RunResult, error)

// cmdContext holds the resolved context for a CLI command.
// Created once per command invocation, not shared between commands.
type cmdContext struct {
	Project project.Project
	Config  config.Config
	Output  *output.Writer

	// PropertiesPath is the effective properties file: the config
	// override when set, otherwise the anchor-relative default.
	PropertiesPath string

	// Injection points for tests.
	Resolve ResolveFunc
	RunTool RunToolFunc
}

// resolveCmdContext builds the context shared by all stpack commands.
func resolveCmdContext(mode output.Mode, f *flags) (*cmdContext, error) {
	w := output.New(mode)

	anchor := f.anchor
	if anchor == "" {
		a, err := project.DefaultAnchor()
		if err != nil {
			return nil, err
		}
		anchor = a
	}

	proj, err := project.Resolve(anchor)
	if err != nil {
		w.Error(err.Error(), "pass an absolute path with --anchor")
		return nil, displayed(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg, _, err := config.Load(cwd)
	if err != nil {
		w.Error("invalid configuration", "check "+config.FileName+" syntax")
		return nil, displayed(err)
	}

	propsPath := proj.PropertiesPath
	if cfg.Properties.File != "" {
		propsPath = cfg.Properties.File
	}

	return &cmdContext{
		Project:        proj,
		Config:         cfg,
		Output:         w,
		PropertiesPath: propsPath,
		Resolve:        dist.ResolveFile,
		RunTool:        stexec.Run,
	}, nil
}

// resolveVersion reads the version using the context's effective
// properties path and key.
func (cc *cmdContext) resolveVersion() (string, error) {
	return cc.Resolve(cc.PropertiesPath, cc.Config.Properties.Key)
}
