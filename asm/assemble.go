package asm

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"pocol/config"
)

// DefaultOutputName is used by callers (cmd/pocol-asm) when no output path
// was given.
const DefaultOutputName = "out.pob"

// Assemble reads the source file at path, assembles it, and writes the
// resulting object to outPath. Diagnostics are printed to stderr as
// "path:line:col: error: message". On any failure no output file is left
// behind.
func Assemble(path, outPath string, cfg config.Config) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	ctx := NewContext(path, src, cfg)
	obj, err := ctx.Assemble()
	if err != nil {
		for _, d := range ctx.Diagnostics() {
			fmt.Fprintf(os.Stderr, "%s:%s\n", path, d.String())
		}
		return err
	}

	if err := obj.WriteFile(outPath); err != nil {
		return errors.Wrapf(err, "writing object to %s", outPath)
	}
	return nil
}
