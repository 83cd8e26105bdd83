package freepcb

import (
	"fmt"
	"io"
	"os"
	"strconv"
)

// ApplyThreeDMap reads 3D model mappings and applies them to the library.
// The map reuses the record format: a mod record selects the current
// footprint by exact name, and the remaining keys set one component each.
// Geometry before any mod record, or a mod naming an unknown footprint, is
// fatal.
func ApplyThreeDMap(r io.Reader, lib *Library) error {
	rd := NewReader(r)
	var current *Module

	for {
		if err := rd.Next(); err != nil {
			return err
		}
		if rd.AtEnd() {
			return nil
		}

		key := rd.Key()
		switch {
		case key == "mod":
			current = lib.Find(rd.Value())
			if current == nil {
				return lineError(rd.Line(), ErrModuleNotFound, "%q", rd.Value())
			}

		case key == "3dmod":
			if current == nil {
				return lineError(rd.Line(), ErrUnboundMapEntry, "3dmod before mod")
			}
			current.ThreeDName = rd.Value()

		case len(key) == 4 && (key[:3] == "rot" || key[:3] == "sca" || key[:3] == "off"):
			if current == nil {
				return lineError(rd.Line(), ErrUnboundMapEntry, "%q before mod", key)
			}
			axis := int(key[3]) - 'x'
			if axis < 0 || axis > 2 {
				return lineError(rd.Line(), ErrUnexpectedKey, "%q in 3D map", key)
			}
			v, err := strconv.ParseFloat(rd.Value(), 64)
			if err != nil {
				return lineError(rd.Line(), ErrMalformedField, "bad number %q", rd.Value())
			}
			switch key[:3] {
			case "rot":
				current.ThreeDRot[axis] = v
			case "sca":
				current.ThreeDScale[axis] = v
			case "off":
				current.ThreeDOffset[axis] = v
			}

		default:
			return lineError(rd.Line(), ErrUnexpectedKey, "%q in 3D map", key)
		}
	}
}

// LoadThreeDMap applies the 3D map file at path to the library.
func LoadThreeDMap(path string, lib *Library) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open 3D map: %w", err)
	}
	defer f.Close()

	if err := ApplyThreeDMap(f, lib); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
