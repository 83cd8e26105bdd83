package freepcb

import (
	"fmt"
	"strings"
	"time"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/geom"
)

// GraphicKind tags the concrete type of a Graphic.
type GraphicKind int

const (
	GraphicPolyline GraphicKind = iota
	GraphicPin
)

// Graphic is one drawable element of a footprint: a Polyline or a Pin.
// Consumers dispatch on Kind rather than the dynamic type.
type Graphic interface {
	Kind() GraphicKind
	BoundingBox() geom.BBox
}

// Module is one footprint: identity metadata, text items, graphics, and an
// optional 3D model attachment. It is built in a single forward pass over
// the record stream and mutated afterwards only by the documented
// post-processing passes (StripSuffix, 3D mapping, AddCourtyard, and
// deterministic timestamping), in that order.
type Module struct {
	Name        string
	Author      string
	Source      string
	Description string

	Units         geom.Units
	SelectionRect string
	Centroid      string

	RefText   *Text
	ValueText *Text
	UserText  []*Text
	Graphics  []Graphic

	ThreeDName   string
	ThreeDRot    [3]float64
	ThreeDScale  [3]float64
	ThreeDOffset [3]float64

	// EditTime is the wall clock at parse time, or a content-hash-derived
	// value when deterministic timestamps are requested.
	EditTime int64
}

// parseModule reads one footprint starting at its name record. The header
// accepts only identity keys and ends at units; the body ends at the next
// name record or end of input.
func parseModule(r *Reader) (*Module, error) {
	m := &Module{
		Centroid:    "0 0 0 0",
		ThreeDScale: [3]float64{1, 1, 1},
	}

	for r.Key() != "units" && !r.AtEnd() {
		switch r.Key() {
		case "name":
			m.Name = r.Value()
		case "author":
			m.Author = r.Value()
		case "source":
			m.Source = r.Value()
		case "description":
			m.Description = r.Value()
		default:
			return nil, lineError(r.Line(), ErrUnexpectedKey, "%q in module header", r.Key())
		}
		if err := r.Next(); err != nil {
			return nil, err
		}
	}

	if m.Name == "" {
		return nil, lineError(r.Line(), ErrMissingField, "module has no name")
	}

	for r.Key() != "name" && !r.AtEnd() {
		var err error

		switch r.Key() {
		case "units":
			m.Units = geom.Units(r.Value())
			if !m.Units.Valid() {
				return nil, lineError(r.Line(), ErrMalformedField, "unknown unit system %q", r.Value())
			}
			err = r.Next()
		case "sel_rect":
			m.SelectionRect = r.Value()
			err = r.Next()
		case "ref_text":
			if m.RefText, err = parseRefOrValueText(TextReference, "REF**", r.Value(), r.Line()); err != nil {
				return nil, err
			}
			err = r.Next()
		case "value_text":
			if m.ValueText, err = parseRefOrValueText(TextValue, m.Name, r.Value(), r.Line()); err != nil {
				return nil, err
			}
			err = r.Next()
		case "text":
			var t *Text
			if t, err = parseUserText(r.Value(), r.Line()); err != nil {
				return nil, err
			}
			m.UserText = append(m.UserText, t)
			err = r.Next()
		case "centroid":
			m.Centroid = r.Value()
			err = r.Next()
		case "adhesive":
			// ignored
			err = r.Next()
		case "outline_polyline":
			var p *Polyline
			if p, err = parsePolyline(r, m.Units); err != nil {
				return nil, err
			}
			m.Graphics = append(m.Graphics, p)
		case "n_pins":
			// redundant count, skipped
			err = r.Next()
		case "pin":
			var p *Pin
			if p, err = parsePin(r, m.Units); err != nil {
				return nil, err
			}
			m.Graphics = append(m.Graphics, p)
		default:
			return nil, lineError(r.Line(), ErrUnexpectedKey, "%q in module body", r.Key())
		}

		if err != nil {
			return nil, err
		}
	}

	// Not used downstream, but their absence indicates a corrupt or
	// unsupported file revision.
	if m.SelectionRect == "" {
		return nil, lineError(r.Line(), ErrMissingField, "module %q has no sel_rect", m.Name)
	}
	if m.RefText == nil {
		return nil, lineError(r.Line(), ErrMissingField, "module %q has no ref_text", m.Name)
	}

	m.EditTime = time.Now().Unix()
	return m, nil
}

// BoundingBox returns the union of all graphic extents in millimeters.
func (m *Module) BoundingBox() geom.BBox {
	bb := geom.NewBBox()
	for _, g := range m.Graphics {
		bb.Union(g.BoundingBox())
	}
	return bb
}

// StripSuffix removes a trailing least/most/nominal size-variant specifier
// from the module name. The value text keeps the original name.
func (m *Module) StripSuffix() {
	if m.Name == "" {
		return
	}
	if strings.ContainsRune("LMNlmn", rune(m.Name[len(m.Name)-1])) {
		m.Name = m.Name[:len(m.Name)-1]
	}
}

// AddCourtyard appends a closed rectangular polyline a fixed clearance in
// millimeters outside the footprint's bounding box, on the courtyard layer.
// A footprint without graphics has no extent to offset from and is rejected.
func (m *Module) AddCourtyard(clearance float64) error {
	bb := m.BoundingBox()
	if bb.IsEmpty() {
		return fmt.Errorf("module %q: no graphics to derive a courtyard from", m.Name)
	}
	corners := bb.CourtyardCorners(clearance)

	m.Graphics = append(m.Graphics, &Polyline{
		Points:    corners[:],
		Styles:    []int{StyleStraight, StyleStraight, StyleStraight, StyleStraight},
		LineWidth: 0.05,
		Layer:     "F.CrtYd",
		Units:     geom.Millimeters,
		Closed:    true,
	})
	return nil
}
