package freepcb

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/freepcb2pretty/pkg/geom"
)

const minimalModule = `name: "TEST1"
author: Example Author
source: none
description: Minimal test footprint
units: NM
sel_rect: -100000 -100000 1100000 1100000
ref_text: 1270000 0 1800000 0 152400
centroid: 0 0 0 0
outline_polyline: 100000 0 0
  next_corner: 1000000 0 0
  next_corner: 1000000 1000000 0
  close_polyline: 0
n_pins: 1
pin: "1" 300000 500000 500000 0
  top_pad: 1 600000 0 0 0
  inner_pad: 1 600000 0 0
  bottom_pad: 1 600000 0 0
`

func parseOne(t *testing.T, input string) *Module {
	t.Helper()
	lib, err := ParseLibrary(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lib.Modules, 1)
	return lib.Modules[0]
}

func TestParseModule(t *testing.T) {
	m := parseOne(t, minimalModule)

	require.Equal(t, "TEST1", m.Name)
	require.Equal(t, "Example Author", m.Author)
	require.Equal(t, geom.Nanometers, m.Units)
	require.NotNil(t, m.RefText)
	require.Equal(t, "REF**", m.RefText.Str)
	require.NotZero(t, m.EditTime)

	require.Len(t, m.Graphics, 2)
	require.Equal(t, GraphicPolyline, m.Graphics[0].Kind())
	require.Equal(t, GraphicPin, m.Graphics[1].Kind())

	p := m.Graphics[0].(*Polyline)
	require.True(t, p.Closed)
	require.Len(t, p.Points, 4)
	require.Equal(t, p.Points[0], p.Points[3])
	require.Len(t, p.Styles, 2)
	require.Equal(t, 100000.0, p.LineWidth)

	pin := m.Graphics[1].(*Pin)
	require.Equal(t, "1", pin.Name)
	require.Equal(t, 300000.0, pin.DrillDiam)
	require.False(t, pin.IsSMD())
	require.NotNil(t, pin.TopPad)
	require.Equal(t, PadRound, pin.TopPad.Shape)
	require.Equal(t, 0.0, pin.TopPad.CornerRadius)
}

func TestParseModuleErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			"unexpected header key",
			"name: X\nbogus: 1\nunits: NM\n",
			ErrUnexpectedKey,
		},
		{
			"unexpected body key",
			"name: X\nunits: NM\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\nbogus: 1\n",
			ErrUnexpectedKey,
		},
		{
			"missing sel_rect",
			"name: X\nunits: NM\nref_text: 1 2 3 4 5\n",
			ErrMissingField,
		},
		{
			"missing ref_text",
			"name: X\nunits: NM\nsel_rect: 0 0 1 1\n",
			ErrMissingField,
		},
		{
			"unknown unit system",
			"name: X\nunits: FURLONG\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\n",
			ErrMalformedField,
		},
		{
			"malformed corner",
			"name: X\nunits: NM\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\n" +
				"outline_polyline: 1 0 0\nnext_corner: 1 2\n",
			ErrMalformedField,
		},
		{
			"pin without pads",
			"name: X\nunits: NM\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\n" +
				`pin: "1" 0 0 0 0` + "\n",
			ErrMissingField,
		},
		{
			"pin with only inner pad",
			"name: X\nunits: NM\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\n" +
				`pin: "1" 0 0 0 0` + "\ninner_pad: 1 600000 0 0\n",
			ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLibrary(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseLibrary() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseUserTextRecord(t *testing.T) {
	input := "name: X\nunits: NM\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\n" +
		`text: "hello" 1270000 10000 20000 90 152400 1 7` + "\n"
	m := parseOne(t, input)

	require.Len(t, m.UserText, 1)
	txt := m.UserText[0]
	require.Equal(t, TextUser, txt.Kind)
	require.Equal(t, "hello", txt.Str)
	require.Equal(t, 1270000.0, txt.Height)
	require.Equal(t, 90.0, txt.Angle)
	require.True(t, txt.Mirrored)
	require.Equal(t, 7, txt.LayerNo)
}

func TestStripSuffix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"CAPC1005N", "CAPC1005"},
		{"CAPC1005L", "CAPC1005"},
		{"CAPC1005m", "CAPC1005"},
		{"R0805", "R0805"},
		{"SOT23", "SOT23"},
	}

	for _, tt := range tests {
		m := &Module{Name: tt.name}
		m.StripSuffix()
		if m.Name != tt.want {
			t.Errorf("StripSuffix(%q) = %q, want %q", tt.name, m.Name, tt.want)
		}
	}
}

func TestAddCourtyard(t *testing.T) {
	m := parseOne(t, minimalModule)
	before := len(m.Graphics)

	require.NoError(t, m.AddCourtyard(0.25))

	require.Len(t, m.Graphics, before+1)
	cy, ok := m.Graphics[before].(*Polyline)
	require.True(t, ok)
	require.True(t, cy.Closed)
	require.Equal(t, "F.CrtYd", cy.Layer)
	require.Equal(t, geom.Millimeters, cy.Units)
	require.Len(t, cy.Points, 5)
	require.Equal(t, cy.Points[0], cy.Points[4])

	bb := m.BoundingBox()
	require.InDelta(t, cy.Points[0].X, bb.Left, 1e-9)
	require.InDelta(t, cy.Points[0].Y, bb.Top, 1e-9)
}

func TestAddCourtyardEmptyModule(t *testing.T) {
	// A footprint with no graphics has no bounding box to offset from; the
	// courtyard pass must fail rather than emit sentinel-sized geometry.
	m := parseOne(t, "name: X\nunits: NM\nsel_rect: 0 0 1 1\nref_text: 1 2 3 4 5\n")

	err := m.AddCourtyard(0.25)
	require.Error(t, err)
	require.Empty(t, m.Graphics, "failed pass must not append graphics")
}

func TestMultipleModules(t *testing.T) {
	input := minimalModule + strings.Replace(minimalModule, `name: "TEST1"`, `name: "TEST2"`, 1)
	lib, err := ParseLibrary(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lib.Modules, 2)
	require.Equal(t, "TEST1", lib.Modules[0].Name)
	require.Equal(t, "TEST2", lib.Modules[1].Name)
}
