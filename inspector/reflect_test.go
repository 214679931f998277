package inspector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Speed   float64 `inspect:"bar,max:250"`
	Heading float64 `inspect:"angle"`
	Label   string  `inspect:"label,fmt:[%s]"`
	Locked  bool
	Count   int
	Hidden  float64 `inspect:"skip"`
	private int
}

type kind uint8

func (kind) String() string { return "fish" }

func TestParseTag(t *testing.T) {
	f := ParseTag("bar,max:250, fmt:%.1f")
	require.Equal(t, WidgetBar, f.Widget)
	require.Equal(t, 250.0, f.Max)
	require.Equal(t, "%.1f", f.Format)

	f = ParseTag("")
	require.Equal(t, WidgetAuto, f.Widget)
	require.Equal(t, 1.0, f.Max)
	require.Empty(t, f.Format)

	require.Equal(t, WidgetAuto, ParseTag("unknown").Widget)
	require.Equal(t, 1.0, ParseTag("bar,max:nope").Max, "bad max keeps the default")
	require.Equal(t, 1.0, ParseTag("bar,max:0").Max)
}

func TestExtractFields(t *testing.T) {
	s := sample{Speed: 125, Heading: 1.5, Label: "x", Locked: true, Count: 3, Hidden: 9}

	fields := ExtractFields(&s)
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	require.Equal(t, []string{"Speed", "Heading", "Label", "Locked", "Count"}, names)

	require.Equal(t, WidgetBar, fields[0].Widget)
	require.Equal(t, 250.0, fields[0].Max)
	require.Equal(t, WidgetAngle, fields[1].Widget)
	require.Equal(t, WidgetBool, fields[3].Widget, "bools auto-detect")
	require.Equal(t, WidgetLabel, fields[4].Widget)

	// Value copy, not pointer to the live struct
	s.Speed = 0
	require.Equal(t, 125.0, fields[0].Value)
}

func TestExtractFieldsNonStruct(t *testing.T) {
	require.Nil(t, ExtractFields(42))
	require.Nil(t, ExtractFields((*sample)(nil)))
}

func TestFieldText(t *testing.T) {
	require.Equal(t, "1.50", Field{Value: 1.5}.Text())
	require.Equal(t, "[x]", Field{Value: "x", Format: "[%s]"}.Text())
	require.Equal(t, "7", Field{Value: 7}.Text())
	require.Equal(t, "fish", Field{Value: kind(0)}.Text())
}

func TestFieldFloat(t *testing.T) {
	for _, v := range []any{float32(2), 2.0, 2} {
		got, ok := Field{Value: v}.Float()
		require.True(t, ok, "%T", v)
		require.Equal(t, 2.0, got)
	}
	_, ok := Field{Value: "2"}.Float()
	require.False(t, ok)
}
