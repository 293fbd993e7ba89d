package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/stethoproject/stpack/internal/dist"
	"github.com/stethoproject/stpack/internal/exec"
	"github.com/stethoproject/stpack/internal/props"
)

// Result is the outcome of a single preflight check.
type Result struct {
	Name    string // e.g. "gradle.properties"
	OK      bool
	Message string // user-facing error description
	Fix     string // actionable fix instruction
}

// CheckProperties verifies that the properties file exists, parses, and
// contains the version key.
func CheckProperties(path, key string) Result {
	r := Result{Name: "gradle.properties"}

	_, err := dist.ResolveFile(path, key)
	switch {
	case err == nil:
		r.OK = true
	case errors.Is(err, fs.ErrNotExist):
		r.Message = fmt.Sprintf("%s not found", path)
		r.Fix = "run from an Android project checkout, or set properties.file in .stpack.toml"
	case errors.Is(err, props.ErrMissingKey):
		r.Message = fmt.Sprintf("%s is missing %s", path, key)
		r.Fix = fmt.Sprintf("add %s to %s, or set properties.key in .stpack.toml", key, path)
	default:
		var pe *props.ParseError
		if errors.As(err, &pe) {
			r.Message = fmt.Sprintf("%s is malformed (%v)", path, pe)
			r.Fix = "fix the offending line; the file must be key = value pairs"
		} else {
			r.Message = err.Error()
		}
	}
	return r
}

// CheckPackager verifies that the configured packaging tool is on PATH.
// A missing (unconfigured) tool passes: build then stops at the descriptor.
func CheckPackager(argv []string) Result {
	r := Result{Name: "packager"}
	if len(argv) == 0 {
		r.OK = true
		return r
	}
	if err := exec.LookPath(argv); err != nil {
		r.Message = err.Error()
		r.Fix = fmt.Sprintf("install %s, or change packager.command in .stpack.toml", argv[0])
		return r
	}
	r.OK = true
	return r
}

// CheckDistDir verifies that the dist directory is creatable (its parent
// is writable) when it does not already exist.
func CheckDistDir(path string) Result {
	r := Result{Name: "dist-dir"}
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			r.Message = fmt.Sprintf("%s exists and is not a directory", path)
			r.Fix = "remove it or set packager.dist_dir in .stpack.toml"
			return r
		}
		r.OK = true
		return r
	}
	r.OK = true
	return r
}

// RunAll runs all preflight checks and returns any failures.
func RunAll(propsPath, versionKey string, packagerArgv []string, distDir string) []Result {
	checks := []Result{
		CheckProperties(propsPath, versionKey),
		CheckPackager(packagerArgv),
		CheckDistDir(distDir),
	}

	var failures []Result
	for _, c := range checks {
		if !c.OK {
			failures = append(failures, c)
		}
	}
	return failures
}
