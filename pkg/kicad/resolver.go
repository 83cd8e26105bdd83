package kicad

import (
	"fmt"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/freepcb"
	"github.com/OpenTraceLab/freepcb2pretty/pkg/geom"
)

// PadSpec is the resolved output form of one pin: the KiCad pad type and
// shape keywords, the two size values in emission order, the drill diameter,
// and the layer set. Sizes and drill stay in the footprint's native units.
type PadSpec struct {
	Type   string
	Shape  string
	SizeA  float64
	SizeB  float64
	Drill  float64
	Layers []string
}

// ResolvePad decides the output type, shape, and dimensions of a pin. It is
// a pure function of the pin, the unstripped module name, and the rounding
// configuration.
//
// Surface-mount pads honor the rounding mode and exception sets; rotated
// pins swap their axes because pad extents are declared in the pin's local
// frame. Through-hole pads ignore rounding entirely, and a pin whose top and
// bottom pads are both shape none becomes a non-plated hole sized to the
// drill.
func ResolvePad(pin *freepcb.Pin, modName string, cfg RoundingConfig) (PadSpec, error) {
	if pin.IsSMD() {
		return resolveSMD(pin, modName, cfg)
	}
	return resolveThruHole(pin)
}

func resolveSMD(pin *freepcb.Pin, modName string, cfg RoundingConfig) (PadSpec, error) {
	ref := pin.RefPad()
	if ref == nil {
		return PadSpec{}, fmt.Errorf("surface-mount pin %q has no top or bottom pad", pin.Name)
	}

	sx, sy := ref.Width, ref.Length()
	if ref.Symmetric() {
		sy = sx
	}
	sx, sy = geom.SwapForRotation(pin.Angle, sx, sy)

	canRound := !matchAny(cfg.PadExceptions, modName)
	canRoundCenter := !matchAny(cfg.CenterExceptions, modName)

	var shape string
	switch {
	case cfg.Mode == RoundNone:
		shape = smdShape(ref.Shape)
	case !canRoundCenter && pin.Pos == (geom.Point{}):
		shape = "rect"
	case cfg.Mode == RoundAll:
		shape = "oval"
		if !canRound {
			shape = "rect"
		}
	case cfg.Mode == RoundAllButPin1:
		switch {
		case !canRound, pin.Name == "1":
			shape = "rect"
		default:
			shape = "oval"
		}
	default:
		return PadSpec{}, fmt.Errorf("unknown rounding mode %d", cfg.Mode)
	}

	return PadSpec{
		Type:   "smd",
		Shape:  shape,
		SizeA:  sy,
		SizeB:  sx,
		Layers: []string{"F.Cu", "F.Paste", "F.Mask"},
	}, nil
}

func resolveThruHole(pin *freepcb.Pin) (PadSpec, error) {
	top := pin.TopPad
	if top == nil {
		return PadSpec{}, fmt.Errorf("through-hole pin %q has no top pad", pin.Name)
	}

	sx, sy := top.Width, top.Length()
	if top.Symmetric() {
		sy = sx
	}
	if pin.Angle == 90 || pin.Angle == 270 {
		sx, sy = sy, sx
	} else if sy == 0 {
		sy = sx
	}

	shape := thruHoleShape(top.Shape)

	bottomShape := freepcb.PadNone
	if pin.BottomPad != nil {
		bottomShape = pin.BottomPad.Shape
	}

	if top.Shape == freepcb.PadNone && bottomShape == freepcb.PadNone {
		// Mechanical hole: no copper, sized to the drill.
		return PadSpec{
			Type:   "np_thru_hole",
			Shape:  shape,
			SizeA:  pin.DrillDiam,
			SizeB:  pin.DrillDiam,
			Drill:  pin.DrillDiam,
			Layers: []string{"*.Mask"},
		}, nil
	}

	return PadSpec{
		Type:   "thru_hole",
		Shape:  shape,
		SizeA:  sx,
		SizeB:  sy,
		Drill:  pin.DrillDiam,
		Layers: []string{"*.Cu", "*.Mask"},
	}, nil
}

// smdShape maps a native shape code to the KiCad shape keyword, defaulting
// to rect.
func smdShape(s freepcb.PadShape) string {
	switch s {
	case freepcb.PadRound, freepcb.PadOctagon:
		return "circle"
	case freepcb.PadSquare, freepcb.PadRect:
		return "rect"
	case freepcb.PadRoundRect:
		return "roundrect"
	case freepcb.PadOval:
		return "oval"
	default:
		return "rect"
	}
}

// thruHoleShape is smdShape with a circle default for unrecognized codes.
func thruHoleShape(s freepcb.PadShape) string {
	switch s {
	case freepcb.PadRound, freepcb.PadOctagon:
		return "circle"
	case freepcb.PadSquare, freepcb.PadRect:
		return "rect"
	case freepcb.PadRoundRect:
		return "roundrect"
	case freepcb.PadOval:
		return "oval"
	default:
		return "circle"
	}
}
