package freepcb

// Text item kinds, matching the KiCad fp_text type keyword.
const (
	TextReference = "reference"
	TextValue     = "value"
	TextUser      = "user"
)

// Text is a reference, value, or user text item. Position, height, and line
// width stay in the footprint's native units until serialization.
type Text struct {
	Kind string
	Str  string

	Height    float64
	X, Y      float64
	Angle     float64
	LineWidth float64

	Mirrored bool
	LayerNo  int
	Layer    string
}

// parseTextParams fills the five positional numbers shared by all text
// records: height, x, y, angle, line width.
func parseTextParams(t *Text, nums []float64) {
	t.Height = nums[0]
	t.X = nums[1]
	t.Y = nums[2]
	t.Angle = nums[3]
	t.LineWidth = nums[4]
}

// parseRefOrValueText parses a ref_text or value_text record. The displayed
// string is fixed: "REF**" for references, the module name for values.
func parseRefOrValueText(kind, str, value string, line int) (*Text, error) {
	nums, err := numericFields(value, line, 5, 5)
	if err != nil {
		return nil, err
	}

	t := &Text{Kind: kind, Str: str, Layer: "F.SilkS"}
	parseTextParams(t, nums)
	return t, nil
}

// parseUserText parses a text record: a quoted string followed by the five
// shared numbers, a mirror flag, and a layer number.
func parseUserText(value string, line int) (*Text, error) {
	str, nums, err := nameAndNumbers(value, line, 7)
	if err != nil {
		return nil, err
	}

	t := &Text{Kind: TextUser, Str: str, Layer: "F.SilkS"}
	parseTextParams(t, nums[:5])
	t.Mirrored = nums[5] != 0
	t.LayerNo = int(nums[6])
	return t, nil
}
