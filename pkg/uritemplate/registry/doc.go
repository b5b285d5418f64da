// Package registry provides a generic concurrent map for memoized,
// read-mostly values such as compiled matchers and parsed expressions.
//
// # Basic Usage
//
//	r := registry.New[string, *regexp.Regexp]()
//	r.Register("digits", regexp.MustCompile(`\d+`))
//
//	re, ok := r.Get("digits")
//
// # Lazy Computation
//
// LoadOrCompute returns the stored value for a key or computes it:
//
//	re, _, err := r.LoadOrCompute("word", func() (*regexp.Regexp, error) {
//	    return regexp.Compile(`\w+`)
//	})
//
// The compute function runs without any lock held. Callers racing on the
// same missing key may each compute a value; the last one published wins.
// Use it only for deterministic computations where a duplicate result is
// interchangeable with the first.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use.
package registry
