package kicad

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	chewxy "github.com/chewxy/sexp"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/freepcb"
)

const singlePinModule = `name: "TEST1"
units: NM
sel_rect: -100000 -100000 1100000 1100000
ref_text: 1270000 0 1800000 0 152400
outline_polyline: 100000 0 0
  next_corner: 1000000 0 0
  next_corner: 1000000 1000000 0
  close_polyline: 0
n_pins: 1
pin: "1" 300000 500000 500000 0
  top_pad: 1 600000 0 0 0
`

func loadModule(t *testing.T, input string) *freepcb.Module {
	t.Helper()
	lib, err := freepcb.ParseLibrary(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lib.Modules, 1)
	return lib.Modules[0]
}

func TestConvertSinglePin(t *testing.T) {
	m := loadModule(t, singlePinModule)

	var sb strings.Builder
	require.NoError(t, WriteModule(&sb, m, Options{}))
	out := sb.String()

	require.True(t, strings.HasPrefix(out, "(module "), "output starts with the module declaration")
	require.Equal(t, 1, strings.Count(out, "thru_hole"))
	require.Equal(t, 1, strings.Count(out, "circle"))
	require.Equal(t, 3, strings.Count(out, "fp_line"), "closed triangle emits three segments")
	require.Contains(t, out, "(drill 0.3)")
	require.Contains(t, out, `"*.Cu" "*.Mask"`)

	// The output must be a single well-formed s-expression.
	parsed, err := chewxy.ParseString(out)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	require.False(t, parsed[0].IsLeaf())
}

func TestConvertArcSegment(t *testing.T) {
	input := `name: "ARC1"
units: NM
sel_rect: 0 0 1 1
ref_text: 1 2 3 4 5
outline_polyline: 100000 0 0
  next_corner: 1000000 1000000 1
`
	m := loadModule(t, input)

	var sb strings.Builder
	require.NoError(t, WriteModule(&sb, m, Options{}))
	out := sb.String()

	require.Contains(t, out, "fp_arc")
	require.Contains(t, out, "(angle 90)")
	require.NotContains(t, out, "fp_line")
}

func TestConvertDegenerateArc(t *testing.T) {
	// A zero-length arc segment has no defined center.
	input := `name: "ARC2"
units: NM
sel_rect: 0 0 1 1
ref_text: 1 2 3 4 5
outline_polyline: 100000 500000 500000
  next_corner: 500000 500000 1
`
	m := loadModule(t, input)

	var sb strings.Builder
	err := WriteModule(&sb, m, Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "ARC2")
}

func TestConvertTexts(t *testing.T) {
	input := `name: "TXT1"
units: NM
sel_rect: 0 0 1 1
ref_text: 1270000 0 1800000 0 152400
value_text: 1270000 0 -1800000 0 152400
text: "note" 1270000 0 0 0 152400 0 7
`
	m := loadModule(t, input)

	var sb strings.Builder
	require.NoError(t, WriteModule(&sb, m, Options{}))
	out := sb.String()

	require.Contains(t, out, `(fp_text reference "REF**"`)
	require.Contains(t, out, `(fp_text value "TXT1"`)
	require.Contains(t, out, `(fp_text user "note"`)
	require.Contains(t, out, `(layer "F.SilkS")`)
}

func TestConvertModel(t *testing.T) {
	m := loadModule(t, singlePinModule)
	m.ThreeDName = "test.wrl"
	m.ThreeDRot = [3]float64{0, 0, 90}

	var sb strings.Builder
	require.NoError(t, WriteModule(&sb, m, Options{}))
	out := sb.String()

	require.Contains(t, out, `(model "test.wrl"`)
	require.Contains(t, out, "(rotate (xyz 0 0 90))")
}

func TestConvertTeditFormat(t *testing.T) {
	m := loadModule(t, singlePinModule)
	m.EditTime = 0x1234ABCD

	var sb strings.Builder
	require.NoError(t, WriteModule(&sb, m, Options{}))
	require.Contains(t, sb.String(), `(tedit "1234ABCD")`)
}

func TestHashEditTime(t *testing.T) {
	m := loadModule(t, singlePinModule)

	first, err := HashEditTime(m, Options{})
	require.NoError(t, err)

	// The hash covers content only, not the timestamp it replaces.
	m.EditTime = 42
	again, err := HashEditTime(m, Options{})
	require.NoError(t, err)
	require.Equal(t, first, again)
	require.Equal(t, int64(42), m.EditTime, "hashing must not modify the footprint")

	other := loadModule(t, strings.Replace(singlePinModule, `"TEST1"`, `"TEST2"`, 1))
	different, err := HashEditTime(other, Options{})
	require.NoError(t, err)
	require.NotEqual(t, first, different)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"R0805", "R0805.kicad_mod"},
		{"DIP/8", "DIP_8.kicad_mod"},
		{"A/B/C", "A_B_C.kicad_mod"},
	}

	for _, tt := range tests {
		if got := FileName(tt.name); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteLibrary(t *testing.T) {
	lib, err := freepcb.ParseLibrary(strings.NewReader(singlePinModule))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, WriteLibrary(dir, lib, Options{}))

	data, err := os.ReadFile(filepath.Join(dir, "TEST1.kicad_mod"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "(module "))
	require.True(t, strings.HasSuffix(string(data), ")\n"))
}
