package uritemplate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileHashMatcher_AllOperators(t *testing.T) {
	for op := Basic; op <= FormQueryContinuation; op++ {
		for _, n := range []int{0, 1, 500, 501, 600, maxRepeat, maxRepeat + 1, MaxLengthLimit} {
			m, err := compileHashMatcher(op, n)
			require.NoError(t, err, "%s/%d", op, n)
			assert.Equal(t, op, m.op)
			assert.Equal(t, n, m.maxLength)
			if n > maxRepeat {
				assert.Equal(t, n, m.unitLimit)
			} else {
				assert.Zero(t, m.unitLimit)
			}
		}
	}
}

func TestHashMatcher_Split(t *testing.T) {
	tests := []struct {
		name  string
		op    Operator
		in    string
		pairs []rawPair
	}{
		{
			name:  "unnamed values",
			op:    Path,
			in:    "/a/b",
			pairs: []rawPair{{value: "a", hasValue: true}, {value: "b", hasValue: true}},
		},
		{
			name: "unnamed keyed",
			op:   Basic,
			in:   "k=v,w",
			pairs: []rawPair{
				{key: "k", value: "v", hasKey: true, hasValue: true},
				{value: "w", hasValue: true},
			},
		},
		{
			name:  "trailing separator joins value",
			op:    Reserved,
			in:    "comma=,",
			pairs: []rawPair{{key: "comma", value: ",", hasKey: true, hasValue: true}},
		},
		{
			name: "named bare key",
			op:   PathParameters,
			in:   ";a;b=",
			pairs: []rawPair{
				{key: "a", hasKey: true},
				{key: "b", value: "", hasKey: true, hasValue: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := compileHashMatcher(tt.op, 0)
			require.NoError(t, err)

			pairs, rest, ok := m.split(tt.in)
			require.True(t, ok, "remainder %q", rest)
			assert.Empty(t, rest)
			assert.Equal(t, tt.pairs, pairs)
		})
	}
}

func TestCountUnits(t *testing.T) {
	assert.Equal(t, 0, countUnits(""))
	assert.Equal(t, 3, countUnits("abc"))
	assert.Equal(t, 2, countUnits("%20a"))
	assert.Equal(t, 3, countUnits("%2%"))
}

func TestMatcherCache(t *testing.T) {
	cache := NewMatcherCache()
	assert.Equal(t, 0, cache.Len())

	a, compiled, err := cache.lookup(FormQuery, 0)
	require.NoError(t, err)
	assert.True(t, compiled)

	b, compiled, err := cache.lookup(FormQuery, 0)
	require.NoError(t, err)
	assert.False(t, compiled)
	assert.Same(t, a, b)

	_, _, err = cache.lookup(FormQuery, 5)
	require.NoError(t, err)
	_, _, err = cache.lookup(Path, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.Len())
}

func TestMatcherCache_SharedAcrossExpressions(t *testing.T) {
	cache := NewMatcherCache()
	a := MustParseExpression("{?a*}", WithMatcherCache(cache))
	b := MustParseExpression("{?b*,c}", WithMatcherCache(cache))

	_, err := a.Extract(0, strPtr("a=1"))
	require.NoError(t, err)
	_, err = b.Extract(0, strPtr("b=1"))
	require.NoError(t, err)

	assert.Equal(t, 1, cache.Len())
}

func TestMatcherCache_Concurrent(t *testing.T) {
	cache := NewMatcherCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			op := Operator(i % int(FormQueryContinuation+1))
			_, _, err := cache.lookup(op, i%3)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 24, cache.Len())
}

func TestEscapeClassChars(t *testing.T) {
	assert.Equal(t, `abc09`, escapeClassChars("abc09"))
	assert.Equal(t, `\&\;\/`, escapeClassChars("&;/"))
}
