package styling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSheet records every call without validating
type recordingSheet struct {
	calls []insertCall
	err   error
}

type insertCall struct {
	rule  string
	index int
}

func (s *recordingSheet) InsertRule(rule string, index int) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.calls = append(s.calls, insertCall{rule: rule, index: index})
	return index, nil
}

func TestInsertStyles_SingleRule(t *testing.T) {
	sheet := NewMemorySheet()
	target := NewRenderTarget(sheet)

	defs := DefinitionSet{
		{Property: "root", Definition: Definition{ClassName: "c1", CSS: ".c1{color:red;}"}},
	}

	classes, err := InsertStyles(defs, false, target)
	require.NoError(t, err)

	assert.Equal(t, " c1", classes)
	assert.True(t, target.Has("c1"))
	assert.Equal(t, CacheEntry{Property: "root", Definition: defs[0].Definition}, target.Cache["c1"])
	assert.Equal(t, []string{".c1{color:red;}"}, sheet.Rules())
	assert.Equal(t, 1, target.Index)
}

func TestInsertStyles_Empty(t *testing.T) {
	target := NewRenderTarget(NewMemorySheet())

	classes, err := InsertStyles(nil, true, target)
	require.NoError(t, err)
	assert.Equal(t, "", classes)
	assert.Equal(t, 0, target.Index)
}

func TestInsertStyles_Idempotent(t *testing.T) {
	sheet := NewMemorySheet()
	target := NewRenderTarget(sheet)

	defs := DefinitionSet{
		{Property: "display", Definition: Definition{ClassName: "a14t3ns0", CSS: ".a14t3ns0{display:inline-block;}"}},
		{Property: "marginLeft", Definition: Definition{
			ClassName: "a2",
			CSS:       ".a2{margin-left:4px;}",
			RTLCSS:    ".ra2{margin-right:4px;}",
		}},
	}

	for _, rtl := range []bool{false, true} {
		first, err := InsertStyles(defs, rtl, target)
		require.NoError(t, err)
		count := sheet.Len()

		second, err := InsertStyles(defs, rtl, target)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, count, sheet.Len())
	}
}

func TestInsertStyles_RTL(t *testing.T) {
	def := Definition{ClassName: "x", CSS: ".x{margin-left:1px;}", RTLCSS: ".rx{margin-right:1px;}"}

	tests := []struct {
		name      string
		rtl       bool
		wantClass string
		wantRule  string
	}{
		{name: "rtl uses variant", rtl: true, wantClass: " rx", wantRule: ".rx{margin-right:1px;}"},
		{name: "ltr uses base", rtl: false, wantClass: " x", wantRule: ".x{margin-left:1px;}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := &recordingSheet{}
			target := NewRenderTarget(sheet)

			classes, err := InsertStyles(DefinitionSet{{Property: "marginLeft", Definition: def}}, tt.rtl, target)
			require.NoError(t, err)

			assert.Equal(t, tt.wantClass, classes)
			require.Len(t, sheet.calls, 1)
			assert.Equal(t, tt.wantRule, sheet.calls[0].rule)
		})
	}
}

func TestInsertStyles_NoRTLVariantFallsBack(t *testing.T) {
	sheet := &recordingSheet{}
	target := NewRenderTarget(sheet)

	defs := DefinitionSet{{Property: "color", Definition: Definition{ClassName: "c", CSS: ".c{color:red;}"}}}

	classes, err := InsertStyles(defs, true, target)
	require.NoError(t, err)

	assert.Equal(t, " c", classes)
	assert.True(t, target.Has("c"))
	assert.False(t, target.Has("rc"))
	require.Len(t, sheet.calls, 1)
	assert.Equal(t, ".c{color:red;}", sheet.calls[0].rule)
}

func TestInsertStyles_BothDirectionsShareTarget(t *testing.T) {
	sheet := NewMemorySheet()
	target := NewRenderTarget(sheet)

	defs := DefinitionSet{{Property: "paddingLeft", Definition: Definition{
		ClassName: "p",
		CSS:       ".p{padding-left:2px;}",
		RTLCSS:    ".rp{padding-right:2px;}",
	}}}

	_, err := InsertStyles(defs, false, target)
	require.NoError(t, err)
	_, err = InsertStyles(defs, true, target)
	require.NoError(t, err)

	assert.Equal(t, 2, target.Len())
	assert.Equal(t, []string{".p{padding-left:2px;}", ".rp{padding-right:2px;}"}, sheet.Rules())
}

func TestInsertStyles_IndexMonotonic(t *testing.T) {
	sheet := &recordingSheet{}
	target := NewRenderTarget(sheet)
	target.Index = 3

	defs := DefinitionSet{
		{Property: "a", Definition: Definition{ClassName: "a", CSS: ".a{top:0;}"}},
		{Property: "b", Definition: Definition{ClassName: "b", CSS: ".b{left:0;}"}},
		{Property: "c", Definition: Definition{ClassName: "c", CSS: ".c{right:0;}"}},
	}

	_, err := InsertStyles(defs, false, target)
	require.NoError(t, err)

	assert.Equal(t, 6, target.Index)
	require.Len(t, sheet.calls, 3)
	for i, call := range sheet.calls {
		assert.Equal(t, 3+i, call.index)
		assert.Equal(t, defs[i].Definition.CSS, call.rule)
	}
}

func TestInsertStyles_CacheShortCircuit(t *testing.T) {
	sheet := &recordingSheet{}
	target := NewRenderTarget(sheet)

	first := DefinitionSet{{Property: "width", Definition: Definition{ClassName: "w", CSS: ".w{width:100%;}"}}}
	_, err := InsertStyles(first, false, target)
	require.NoError(t, err)
	require.Len(t, sheet.calls, 1)

	// a different property reusing the class is still a hit
	second := DefinitionSet{
		{Property: "other", Definition: Definition{ClassName: "w", CSS: ".w{width:100%;}"}},
		{Property: "height", Definition: Definition{ClassName: "h", CSS: ".h{height:auto;}"}},
	}
	classes, err := InsertStyles(second, false, target)
	require.NoError(t, err)

	assert.Equal(t, " w h", classes)
	assert.Len(t, sheet.calls, 2)
	assert.Equal(t, "width", target.Cache["w"].Property)
}

func TestInsertStyles_SheetErrorPropagates(t *testing.T) {
	sheet := NewMemorySheet()
	target := NewRenderTarget(sheet)

	defs := DefinitionSet{
		{Property: "ok", Definition: Definition{ClassName: "ok", CSS: ".ok{color:blue;}"}},
		{Property: "bad", Definition: Definition{ClassName: "bad", CSS: "color:red;"}},
		{Property: "never", Definition: Definition{ClassName: "never", CSS: ".never{color:green;}"}},
	}

	classes, err := InsertStyles(defs, false, target)
	require.Error(t, err)
	assert.Equal(t, "", classes)

	var sheetErr *StylesheetError
	require.True(t, errors.As(err, &sheetErr))
	assert.Equal(t, "color:red;", sheetErr.Rule)
	assert.Equal(t, 1, sheetErr.Index)
	assert.ErrorIs(t, err, ErrSyntax)

	assert.Equal(t, 1, target.Index)
	assert.False(t, target.Has("never"))
}

func TestInsertStyles_ErrorReturnedUnchanged(t *testing.T) {
	hostErr := errors.New("host rejected rule")
	target := NewRenderTarget(&recordingSheet{err: hostErr})

	_, err := InsertStyles(DefinitionSet{{Property: "a", Definition: Definition{ClassName: "a", CSS: ".a{}"}}}, false, target)
	assert.Same(t, hostErr, err)
}

func TestInsertStyles_NilCache(t *testing.T) {
	target := &RenderTarget{Sheet: NewMemorySheet()}

	classes, err := InsertStyles(DefinitionSet{{Property: "a", Definition: Definition{ClassName: "a", CSS: ".a{top:0;}"}}}, false, target)
	require.NoError(t, err)
	assert.Equal(t, " a", classes)
	assert.True(t, target.Has("a"))
}
