package cli

import (
	"errors"
	"io/fs"

	"github.com/stethoproject/stpack/internal/output"
	"github.com/stethoproject/stpack/internal/props"
)

// printResolveError prints a resolver failure with an actionable fix line
// and returns the error marked as displayed.
func printResolveError(w *output.Writer, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		w.Error(err.Error(), "run from an Android project checkout, or set properties.file in .stpack.toml")
	case errors.Is(err, props.ErrMissingKey), errors.Is(err, props.ErrMissingSection):
		w.Error(err.Error(), "add the key to gradle.properties, or set properties.key in .stpack.toml")
	default:
		var pe *props.ParseError
		if errors.As(err, &pe) {
			w.Error(err.Error(), "gradle.properties must contain key = value lines")
		} else {
			w.Error(err.Error(), "")
		}
	}
	return displayed(err)
}
