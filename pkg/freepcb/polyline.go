package freepcb

import (
	"github.com/OpenTraceLab/freepcb2pretty/pkg/geom"
)

// Polyline segment styles. Arc styles encode the two possible directions of
// a quarter-circle arc between consecutive corners.
const (
	StyleStraight = 0
	StyleArcCW    = 1
	StyleArcCCW   = 2
)

// Polyline is an ordered open or closed chain of corners. Styles holds one
// entry per next_corner record, describing the segment ending at that
// corner; a closing segment reuses the last style.
type Polyline struct {
	Points    []geom.Point
	Styles    []int
	LineWidth float64
	Layer     string
	Units     geom.Units
	Closed    bool
}

// Kind implements Graphic.
func (p *Polyline) Kind() GraphicKind {
	return GraphicPolyline
}

// BoundingBox returns the extent of the corner points in millimeters.
func (p *Polyline) BoundingBox() geom.BBox {
	bb := geom.NewBBox()
	for _, pt := range p.Points {
		bb.Expand(geom.ToMM(pt.X, p.Units), geom.ToMM(pt.Y, p.Units))
	}
	return bb
}

// parsePolyline reads an outline_polyline record and its following
// next_corner records. An explicit close_polyline record closes the shape by
// duplicating the first corner; there is no implicit closing.
func parsePolyline(r *Reader, units geom.Units) (*Polyline, error) {
	nums, err := numericFields(r.Value(), r.Line(), 3, 3)
	if err != nil {
		return nil, err
	}

	p := &Polyline{
		LineWidth: nums[0],
		Points:    []geom.Point{{X: nums[1], Y: nums[2]}},
		Layer:     "F.SilkS",
		Units:     units,
	}

	if err := r.Next(); err != nil {
		return nil, err
	}

	for r.Key() == "next_corner" {
		nums, err := numericFields(r.Value(), r.Line(), 3, 3)
		if err != nil {
			return nil, err
		}
		p.Points = append(p.Points, geom.Point{X: nums[0], Y: nums[1]})
		p.Styles = append(p.Styles, int(nums[2]))

		if err := r.Next(); err != nil {
			return nil, err
		}
	}

	if r.Key() == "close_polyline" {
		p.Closed = true
		p.Points = append(p.Points, p.Points[0])
		if err := r.Next(); err != nil {
			return nil, err
		}
	}

	return p, nil
}
