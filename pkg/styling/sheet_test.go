package styling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySheet_InsertRule(t *testing.T) {
	sheet := NewMemorySheet()

	idx, err := sheet.InsertRule(".a{color:red;}", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = sheet.InsertRule(".b{color:blue;}", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	// inserting in front shifts existing rules
	_, err = sheet.InsertRule(".c{color:green;}", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{".c{color:green;}", ".a{color:red;}", ".b{color:blue;}"}, sheet.Rules())
	assert.Equal(t, 3, sheet.Len())
	assert.Equal(t, 3, sheet.InsertCount())
	assert.Equal(t, ".c{color:green;}\n.a{color:red;}\n.b{color:blue;}", sheet.String())
}

func TestMemorySheet_AcceptsAtRules(t *testing.T) {
	sheet := NewMemorySheet()

	_, err := sheet.InsertRule("@media (min-width: 600px){.a{width:50%;}}", 0)
	assert.NoError(t, err)
}

func TestMemorySheet_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		rule  string
		index int
		want  error
	}{
		{name: "empty", rule: "   ", want: ErrSyntax},
		{name: "no block", rule: "color:red;", want: ErrSyntax},
		{name: "unterminated", rule: ".a{color:red;", want: ErrSyntax},
		{name: "two rules", rule: ".a{color:red;} .b{color:blue;}", want: ErrSyntax},
		{name: "no selector", rule: "{color:red;}", want: ErrSyntax},
		{name: "index past end", rule: ".a{color:red;}", index: 1, want: ErrIndexSize},
		{name: "negative index", rule: ".a{color:red;}", index: -1, want: ErrIndexSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := NewMemorySheet()

			_, err := sheet.InsertRule(tt.rule, tt.index)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var sheetErr *StylesheetError
			require.True(t, errors.As(err, &sheetErr))
			assert.Equal(t, tt.rule, sheetErr.Rule)
			assert.Equal(t, tt.index, sheetErr.Index)

			assert.Equal(t, 0, sheet.Len())
			assert.Equal(t, 0, sheet.InsertCount())
		})
	}
}

func TestMemorySheet_RulesIsACopy(t *testing.T) {
	sheet := NewMemorySheet()
	_, err := sheet.InsertRule(".a{top:0;}", 0)
	require.NoError(t, err)

	rules := sheet.Rules()
	rules[0] = "changed"

	assert.Equal(t, []string{".a{top:0;}"}, sheet.Rules())
}
