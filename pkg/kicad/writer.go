package kicad

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/freepcb"
	"github.com/OpenTraceLab/freepcb2pretty/pkg/kicad/sexp"
)

// WriteModule serializes one footprint to w.
func WriteModule(w io.Writer, m *freepcb.Module, opts Options) error {
	tree, err := ModuleSexp(m, opts)
	if err != nil {
		return err
	}
	return sexp.Write(w, tree)
}

// HashEditTime derives a reproducible edit time from the footprint content:
// the footprint is serialized with a zero timestamp, hashed with MD5, and
// the little-endian uint32 of the first four digest bytes is the result.
func HashEditTime(m *freepcb.Module, opts Options) (uint32, error) {
	zeroed := *m
	zeroed.EditTime = 0

	tree, err := ModuleSexp(&zeroed, opts)
	if err != nil {
		return 0, err
	}

	sum := md5.Sum([]byte(sexp.Format(tree)))
	return binary.LittleEndian.Uint32(sum[:4]), nil
}

// FileName returns the output file name for a footprint, with path-hostile
// slashes replaced.
func FileName(name string) string {
	return strings.ReplaceAll(name, "/", "_") + ".kicad_mod"
}

// WriteLibrary writes one .kicad_mod file per footprint into dir.
func WriteLibrary(dir string, lib *freepcb.Library, opts Options) error {
	for _, m := range lib.Modules {
		path := filepath.Join(dir, FileName(m.Name))
		if err := writeModuleFile(path, m, opts); err != nil {
			return fmt.Errorf("module %q: %w", m.Name, err)
		}
	}
	return nil
}

func writeModuleFile(path string, m *freepcb.Module, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteModule(f, m, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
