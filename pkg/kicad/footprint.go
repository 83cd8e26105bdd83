package kicad

import (
	"fmt"
	"unicode/utf8"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/freepcb"
	"github.com/OpenTraceLab/freepcb2pretty/pkg/geom"
	"github.com/OpenTraceLab/freepcb2pretty/pkg/kicad/sexp"
)

// Options carries the conversion configuration. It is threaded explicitly
// into conversion so pad resolution stays a pure function.
type Options struct {
	Rounding RoundingConfig
}

// ModuleSexp converts one footprint to its KiCad s-expression tree:
// identity, text items, silkscreen and courtyard outlines, pads, and the
// optional 3D model, in that order.
func ModuleSexp(m *freepcb.Module, opts Options) (sexp.List, error) {
	root := sexp.List{
		sexp.Symbol("module"),
		sexp.String(m.Name),
		sexp.NewList(sexp.Symbol("layer"), sexp.String("F.Cu")),
		sexp.NewList(sexp.Symbol("tedit"), sexp.String(fmt.Sprintf("%08X", m.EditTime))),
		sexp.NewList(sexp.Symbol("descr"), sexp.String(m.Description)),
	}

	if m.RefText != nil {
		root = append(root, textSexp(m.RefText, m.Units))
	}
	if m.ValueText != nil {
		root = append(root, textSexp(m.ValueText, m.Units))
	}
	for _, t := range m.UserText {
		root = append(root, textSexp(t, m.Units))
	}

	for _, g := range m.Graphics {
		if g.Kind() != freepcb.GraphicPolyline {
			continue
		}
		nodes, err := polylineSexp(g.(*freepcb.Polyline))
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", m.Name, err)
		}
		root = append(root, nodes...)
	}

	for _, g := range m.Graphics {
		if g.Kind() != freepcb.GraphicPin {
			continue
		}
		node, err := padSexp(g.(*freepcb.Pin), m.Name, opts.Rounding)
		if err != nil {
			return nil, fmt.Errorf("module %q: %w", m.Name, err)
		}
		root = append(root, node)
	}

	if m.ThreeDName != "" {
		root = append(root, modelSexp(m))
	}

	return root, nil
}

// textSexp renders one text item. The FreePCB top-left origin becomes a
// centered anchor and y flips into the KiCad frame.
func textSexp(t *freepcb.Text, units geom.Units) sexp.Node {
	h := geom.ToMM(t.Height, units)
	px, py := geom.TextAnchor(
		geom.ToMM(t.X, units),
		geom.ToMM(t.Y, units),
		h,
		utf8.RuneCountInString(t.Str),
	)

	return sexp.NewList(
		sexp.Symbol("fp_text"),
		sexp.Symbol(t.Kind),
		sexp.String(t.Str),
		sexp.NewList(sexp.Symbol("at"), sexp.Number(px), sexp.Number(py)),
		sexp.NewList(sexp.Symbol("layer"), sexp.String(t.Layer)),
		sexp.NewList(sexp.Symbol("effects"),
			sexp.NewList(sexp.Symbol("font"),
				sexp.NewList(sexp.Symbol("size"), sexp.Number(h), sexp.Number(h)),
				sexp.NewList(sexp.Symbol("thickness"), sexp.Number(geom.ToMM(t.LineWidth, units))),
			),
		),
	)
}

// polylineSexp renders each segment as an fp_line or fp_arc. A closing
// segment beyond the declared styles reuses the last style.
func polylineSexp(p *freepcb.Polyline) ([]sexp.Node, error) {
	var nodes []sexp.Node
	width := sexp.Number(geom.ToMM(p.LineWidth, p.Units))
	layer := sexp.NewList(sexp.Symbol("layer"), sexp.String(p.Layer))

	last := p.Points[0]
	j := 0
	for _, pt := range p.Points[1:] {
		style := freepcb.StyleStraight
		if len(p.Styles) > 0 {
			style = p.Styles[j]
		}

		if style == freepcb.StyleStraight {
			nodes = append(nodes, sexp.NewList(
				sexp.Symbol("fp_line"),
				sexp.NewList(sexp.Symbol("start"),
					sexp.Number(geom.ToMM(last.X, p.Units)),
					sexp.Number(geom.ToMM(-last.Y, p.Units))),
				sexp.NewList(sexp.Symbol("end"),
					sexp.Number(geom.ToMM(pt.X, p.Units)),
					sexp.Number(geom.ToMM(-pt.Y, p.Units))),
				layer,
				sexp.NewList(sexp.Symbol("width"), width),
			))
		} else {
			angle := 90.0
			if style == freepcb.StyleArcCW {
				angle = -90.0
			}

			// Arc math runs in the y-flipped output frame.
			p1 := geom.Point{X: last.X, Y: -last.Y}
			p2 := geom.Point{X: pt.X, Y: -pt.Y}
			center, err := geom.ArcCenter(p1, p2, angle)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, sexp.NewList(
				sexp.Symbol("fp_arc"),
				sexp.NewList(sexp.Symbol("start"),
					sexp.Number(geom.ToMM(center.X, p.Units)),
					sexp.Number(geom.ToMM(center.Y, p.Units))),
				sexp.NewList(sexp.Symbol("end"),
					sexp.Number(geom.ToMM(p1.X, p.Units)),
					sexp.Number(geom.ToMM(p1.Y, p.Units))),
				sexp.NewList(sexp.Symbol("angle"), sexp.Number(-angle)),
				layer,
				sexp.NewList(sexp.Symbol("width"), width),
			))
		}

		last = pt
		if j < len(p.Styles)-1 {
			j++
		}
	}

	return nodes, nil
}

// padSexp renders one pin as a pad entry using the resolved shape and sizes.
func padSexp(pin *freepcb.Pin, modName string, cfg RoundingConfig) (sexp.Node, error) {
	spec, err := ResolvePad(pin, modName, cfg)
	if err != nil {
		return nil, err
	}

	node := sexp.List{
		sexp.Symbol("pad"),
		sexp.String(pin.Name),
		sexp.Symbol(spec.Type),
		sexp.Symbol(spec.Shape),
		sexp.NewList(sexp.Symbol("at"),
			sexp.Number(geom.ToMM(pin.Pos.X, pin.Units)),
			sexp.Number(-geom.ToMM(pin.Pos.Y, pin.Units))),
		sexp.NewList(sexp.Symbol("size"),
			sexp.Number(geom.ToMM(spec.SizeA, pin.Units)),
			sexp.Number(geom.ToMM(spec.SizeB, pin.Units))),
	}

	if spec.Drill > 0 {
		node = append(node, sexp.NewList(sexp.Symbol("drill"),
			sexp.Number(geom.ToMM(spec.Drill, pin.Units))))
	}

	layers := sexp.List{sexp.Symbol("layers")}
	for _, l := range spec.Layers {
		layers = append(layers, sexp.String(l))
	}
	return append(node, layers), nil
}

// modelSexp renders the 3D model attachment.
func modelSexp(m *freepcb.Module) sexp.Node {
	xyz := func(v [3]float64) sexp.Node {
		return sexp.NewList(sexp.Symbol("xyz"),
			sexp.Number(v[0]), sexp.Number(v[1]), sexp.Number(v[2]))
	}

	return sexp.NewList(
		sexp.Symbol("model"),
		sexp.String(m.ThreeDName),
		sexp.NewList(sexp.Symbol("at"), xyz(m.ThreeDOffset)),
		sexp.NewList(sexp.Symbol("scale"), xyz(m.ThreeDScale)),
		sexp.NewList(sexp.Symbol("rotate"), xyz(m.ThreeDRot)),
	)
}
