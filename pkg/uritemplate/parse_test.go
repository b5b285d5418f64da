package uritemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		src   string
		op    Operator
		specs []VarSpec
	}{
		{"{x}", Basic, []VarSpec{{Name: "x"}}},
		{"{+path:6}", Reserved, []VarSpec{{Name: "path", MaxLength: 6}}},
		{"{#x,y}", Fragment, []VarSpec{{Name: "x"}, {Name: "y"}}},
		{"{.dom*}", Label, []VarSpec{{Name: "dom", Explode: true}}},
		{"{/a,b*:9999}", Path, []VarSpec{{Name: "a"}, {Name: "b", Explode: true, MaxLength: 9999}}},
		{"{;x}", PathParameters, []VarSpec{{Name: "x"}}},
		{"{?user.name,q_1}", FormQuery, []VarSpec{{Name: "user.name"}, {Name: "q_1"}}},
		{"{&%C3%BC}", FormQueryContinuation, []VarSpec{{Name: "%C3%BC"}}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := ParseExpression(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.op, e.Operator())
			assert.Equal(t, tt.specs, e.Specs())
		})
	}
}

func TestParseExpression_Errors(t *testing.T) {
	tests := []struct {
		src    string
		offset int
	}{
		{"", 0},
		{"x", 0},
		{"{x", 0},
		{"x}", 0},
		{"{}", 1},
		{"{?}", 2},
		{"{!x}", 1},
		{"{=x}", 1},
		{"{|x}", 1},
		{"{x y}", 1},
		{"{x,}", 3},
		{"{,x}", 1},
		{"{x:0}", 1},
		{"{x:10000}", 1},
		{"{x:-1}", 1},
		{"{?a,b**}", 4},
		{"{a..b}", 1},
		{"{%zz}", 1},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseExpression(tt.src)
			require.Error(t, err)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.src, se.Source)
			assert.Equal(t, tt.offset, se.Offset)
			assert.NotEmpty(t, se.Error())
		})
	}
}

func TestParseExpression_AppliesOptions(t *testing.T) {
	cache := NewMatcherCache()
	e, err := ParseExpression("{?list*}", WithMatcherCache(cache))
	require.NoError(t, err)

	_, err = e.Extract(0, strPtr("list=a"))
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}

func TestMustParseExpression(t *testing.T) {
	assert.NotPanics(t, func() {
		MustParseExpression("{x}")
	})
	assert.PanicsWithValue(t, "uritemplate: "+(&SyntaxError{Source: "{}", Offset: 1, Msg: "empty variable list"}).Error(), func() {
		MustParseExpression("{}")
	})
}
