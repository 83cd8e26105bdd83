package freepcb

// PadShape is a FreePCB native pad shape code.
type PadShape int

const (
	PadNone PadShape = iota
	PadRound
	PadSquare
	PadRect
	PadRoundRect
	PadOval
	PadOctagon
)

// Pad is the copper geometry of one pin on one layer. Len1 and Len2 are the
// half-extents along the pad's long axis contributed by each side; a pad
// with Width zero is absent on that layer.
type Pad struct {
	Shape        PadShape
	Width        float64
	Len1         float64
	Len2         float64
	CornerRadius float64
}

// Length returns the pad's full extent along its long axis.
func (p *Pad) Length() float64 {
	return p.Len1 + p.Len2
}

// Symmetric reports whether the shape has equal extents on both axes, in
// which case the declared length is ignored and the width is used for both.
func (p *Pad) Symmetric() bool {
	return p.Shape == PadRound || p.Shape == PadSquare || p.Shape == PadOctagon
}

// parsePad parses a pad-layer record value: shape code, width, len1, len2,
// and an optional corner radius defaulting to zero.
func parsePad(value string, line int) (*Pad, error) {
	nums, err := numericFields(value, line, 4, 5)
	if err != nil {
		return nil, err
	}
	if len(nums) == 4 {
		nums = append(nums, 0)
	}

	return &Pad{
		Shape:        PadShape(int(nums[0])),
		Width:        nums[1],
		Len1:         nums[2],
		Len2:         nums[3],
		CornerRadius: nums[4],
	}, nil
}
