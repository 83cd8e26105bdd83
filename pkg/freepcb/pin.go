package freepcb

import (
	"github.com/OpenTraceLab/freepcb2pretty/pkg/geom"
)

// Pin is one contact point: a drill diameter (zero for surface mount), a
// placement, a rotation in quarter turns, and up to three pads. Mask and
// paste layer records are accepted in the input but not modeled.
type Pin struct {
	Name      string
	DrillDiam float64
	Pos       geom.Point
	Angle     float64
	Units     geom.Units

	TopPad    *Pad
	InnerPad  *Pad
	BottomPad *Pad
}

// Kind implements Graphic.
func (p *Pin) Kind() GraphicKind {
	return GraphicPin
}

// IsSMD reports whether the pin is surface-mount (no drill).
func (p *Pin) IsSMD() bool {
	return p.DrillDiam == 0
}

// RefPad returns the pad whose geometry defines the pin: the top pad when
// present, otherwise the bottom pad.
func (p *Pin) RefPad() *Pad {
	if p.TopPad != nil {
		return p.TopPad
	}
	return p.BottomPad
}

// BoundingBox returns the pad extent around the pin center in millimeters.
func (p *Pin) BoundingBox() geom.BBox {
	pad := p.RefPad()
	sx, sy := pad.Width, pad.Length()
	if sy == 0 {
		sy = sx
	}
	sx, sy = geom.SwapForRotation(p.Angle, sx, sy)
	if p.IsSMD() {
		sx, sy = sy, sx
	}

	bb := geom.NewBBox()
	bb.Expand(geom.ToMM(p.Pos.X-sx/2, p.Units), geom.ToMM(p.Pos.Y-sy/2, p.Units))
	bb.Expand(geom.ToMM(p.Pos.X+sx/2, p.Units), geom.ToMM(p.Pos.Y+sy/2, p.Units))
	return bb
}

// parsePin reads a pin record (quoted designator plus drill diameter, x, y,
// angle) and the pad-layer records that follow it. It stops on the first key
// that is not a pad, mask, or paste layer; the caller validates that key.
func parsePin(r *Reader, units geom.Units) (*Pin, error) {
	name, nums, err := nameAndNumbers(r.Value(), r.Line(), 4)
	if err != nil {
		return nil, err
	}

	p := &Pin{
		Name:      name,
		DrillDiam: nums[0],
		Pos:       geom.Point{X: nums[1], Y: nums[2]},
		Angle:     nums[3],
		Units:     units,
	}

	if err := r.Next(); err != nil {
		return nil, err
	}

	for {
		switch r.Key() {
		case "top_pad":
			if p.TopPad, err = parsePad(r.Value(), r.Line()); err != nil {
				return nil, err
			}
		case "inner_pad":
			if p.InnerPad, err = parsePad(r.Value(), r.Line()); err != nil {
				return nil, err
			}
		case "bottom_pad":
			if p.BottomPad, err = parsePad(r.Value(), r.Line()); err != nil {
				return nil, err
			}
		case "top_mask", "top_paste", "bottom_mask", "bottom_paste":
			// accepted but not modeled
		default:
			// RefPad must resolve; a pin with neither top nor bottom pad has
			// no geometry to place.
			if p.TopPad == nil && p.BottomPad == nil {
				return nil, lineError(r.Line(), ErrMissingField, "pin %q has no top or bottom pad", p.Name)
			}
			return p, nil
		}

		if err := r.Next(); err != nil {
			return nil, err
		}
	}
}
