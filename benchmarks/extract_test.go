package benchmarks

import (
	"fmt"
	"strings"
	"testing"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate"
)

// BenchmarkExtract_Scalar measures non-exploded extraction.
func BenchmarkExtract_Scalar(b *testing.B) {
	expr := uritemplate.MustParseExpression("{?q}")
	m := "q=go%20generics,fr"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = expr.Extract(0, &m)
	}
}

// BenchmarkExtract_Exploded measures composite extraction with a warm
// matcher cache.
func BenchmarkExtract_Exploded(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		pairs := make([]string, n)
		for i := range pairs {
			pairs[i] = fmt.Sprintf("k%d=v%d", i, i)
		}
		m := strings.Join(pairs, "&")
		expr := uritemplate.MustParseExpression("{?keys*}")

		b.Run(fmt.Sprintf("pairs=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, _ = expr.Extract(0, &m)
			}
		})
	}
}

// BenchmarkExtract_ColdMatcher measures composite extraction including
// matcher compilation.
func BenchmarkExtract_ColdMatcher(b *testing.B) {
	m := "/a/b/c"

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		expr := uritemplate.MustParseExpression("{/list*}", uritemplate.WithMatcherCache(uritemplate.NewMatcherCache()))
		_, _ = expr.Extract(0, &m)
	}
}
