package uritemplate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate/registry"
)

// maxRepeat is the largest bounded repetition RE2 accepts. Longer prefix
// limits compile to an unbounded run and are checked after matching.
const maxRepeat = 1000

// pctTriplet avoids a nested {2}: RE2 multiplies nested repeat counts
// against maxRepeat.
const pctTriplet = `%[0-9A-Fa-f][0-9A-Fa-f]`

// patternBuilder assembles matcher source from operator constants.
type patternBuilder struct {
	profile Profile
	b       strings.Builder
}

func newPatternBuilder(p Profile) *patternBuilder {
	return &patternBuilder{profile: p}
}

func (pb *patternBuilder) push(parts ...string) *patternBuilder {
	for _, s := range parts {
		pb.b.WriteString(s)
	}
	return pb
}

func (pb *patternBuilder) separator() *patternBuilder {
	return pb.push(regexp.QuoteMeta(pb.profile.Separator))
}

func (pb *patternBuilder) pairConnector() *patternBuilder {
	return pb.push(regexp.QuoteMeta(pb.profile.PairConnector))
}

// notSeparator matches one character that does not start a separator.
func (pb *patternBuilder) notSeparator() *patternBuilder {
	return pb.push(`[^`, escapeClassChars(pb.profile.Separator), `]`)
}

// characterClass matches one allowed unit, excluding the given characters.
func (pb *patternBuilder) characterClass(exclude string) *patternBuilder {
	return pb.push(`(?:[`, classChars(pb.profile.Class, exclude), `]|`, pctTriplet, `)`)
}

// length appends a repetition: {0,n} when n is in range, otherwise min+.
func (pb *patternBuilder) length(n, min int) *patternBuilder {
	switch {
	case n > 0 && n <= maxRepeat:
		return pb.push(`{`, strconv.Itoa(min), `,`, strconv.Itoa(n), `}`)
	case min == 0:
		return pb.push(`*`)
	default:
		return pb.push(`+`)
	}
}

func (pb *patternBuilder) reluctant() *patternBuilder {
	return pb.push(`?`)
}

func (pb *patternBuilder) optional() *patternBuilder {
	return pb.push(`?`)
}

func (pb *patternBuilder) group(fn func()) *patternBuilder {
	pb.push(`(?:`)
	fn()
	return pb.push(`)`)
}

func (pb *patternBuilder) capture(fn func()) *patternBuilder {
	pb.push(`(`)
	fn()
	return pb.push(`)`)
}

func (pb *patternBuilder) String() string {
	return pb.b.String()
}

// classChars lists the printable ASCII characters allowed by c, minus
// exclude, escaped for use inside a bracket expression.
func classChars(c CharClass, exclude string) string {
	var b strings.Builder
	for ch := byte('!'); ch <= '~'; ch++ {
		if c.allows(ch) && strings.IndexByte(exclude, ch) < 0 {
			b.WriteString(escapeClassChars(string(ch)))
		}
	}
	return b.String()
}

func escapeClassChars(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !('a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || '0' <= ch && ch <= '9') {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	return b.String()
}

// hashMatcher decomposes an exploded composite rendering into pairs.
//
// Each match consumes an optional leading separator, an optional key with
// its pair connector, a reluctant value run, and then either the end of input
// or a separator that is not immediately followed by another separator. RE2
// has no lookahead, so the character after the separator is consumed by the
// pattern and handed back to the next iteration.
type hashMatcher struct {
	op        Operator
	maxLength int
	// unitLimit is set when maxLength exceeds what RE2 can bound.
	unitLimit int
	re        *regexp.Regexp
}

// rawPair is one undecoded match.
type rawPair struct {
	key      string
	value    string
	hasKey   bool
	hasValue bool
}

func compileHashMatcher(op Operator, maxLength int) (*hashMatcher, error) {
	p := op.Profile()
	pb := newPatternBuilder(p)
	keyExclude := p.Separator + p.PairConnector

	pb.push(`\A`)
	pb.group(func() { pb.separator() }).optional()
	if p.Named {
		pb.capture(func() { pb.characterClass(keyExclude).length(0, 1).reluctant() })
		pb.group(func() {
			pb.pairConnector()
			pb.capture(func() { pb.characterClass("").length(maxLength, 0).reluctant() })
		}).optional()
	} else {
		pb.group(func() {
			pb.capture(func() { pb.characterClass(keyExclude).length(0, 1).reluctant() })
			pb.pairConnector()
		}).optional()
		pb.capture(func() { pb.characterClass("").length(maxLength, 0).reluctant() })
	}
	pb.group(func() {
		pb.push(`\z|`)
		pb.capture(func() { pb.separator() })
		pb.group(func() {
			pb.push(`\z|`)
			pb.notSeparator()
		})
	})

	re, err := regexp.Compile(pb.String())
	if err != nil {
		return nil, fmt.Errorf("compile %s matcher: %w", op, err)
	}

	m := &hashMatcher{op: op, maxLength: maxLength, re: re}
	if maxLength > maxRepeat {
		m.unitLimit = maxLength
	}
	return m, nil
}

// split consumes s completely. On failure it returns the pairs decoded so
// far, the unconsumed remainder and false.
func (m *hashMatcher) split(s string) ([]rawPair, string, bool) {
	var pairs []rawPair
	rest := s
	for rest != "" {
		loc := m.re.FindStringSubmatchIndex(rest)
		if loc == nil {
			return pairs, rest, false
		}

		var p rawPair
		if loc[2] >= 0 {
			p.key, p.hasKey = rest[loc[2]:loc[3]], true
		}
		if loc[4] >= 0 {
			p.value, p.hasValue = rest[loc[4]:loc[5]], true
		}

		next := ""
		if loc[6] >= 0 {
			if loc[7] == len(rest) {
				// A trailing separator belongs to the last value.
				p.value += rest[loc[6]:loc[7]]
				p.hasValue = true
			} else {
				next = rest[loc[7]:]
			}
		}

		if m.unitLimit > 0 && countUnits(p.value) > m.unitLimit {
			return pairs, rest, false
		}

		pairs = append(pairs, p)
		rest = next
	}
	return pairs, "", true
}

func countUnits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isTriplet(s, i) {
			i += 2
		}
		n++
	}
	return n
}

type matcherKey struct {
	op        Operator
	maxLength int
}

// MatcherCache memoizes composite matchers per (operator, max length).
// It is safe for concurrent use; concurrent first lookups of the same key
// may compile the same matcher more than once.
type MatcherCache struct {
	entries *registry.Registry[matcherKey, *hashMatcher]
}

// NewMatcherCache returns an empty cache.
func NewMatcherCache() *MatcherCache {
	return &MatcherCache{entries: registry.New[matcherKey, *hashMatcher]()}
}

// Len returns the number of compiled matchers.
func (c *MatcherCache) Len() int {
	return c.entries.Len()
}

// lookup returns the matcher for (op, maxLength); compiled reports whether
// this call built it.
func (c *MatcherCache) lookup(op Operator, maxLength int) (*hashMatcher, bool, error) {
	return c.entries.LoadOrCompute(matcherKey{op: op, maxLength: maxLength}, func() (*hashMatcher, error) {
		return compileHashMatcher(op, maxLength)
	})
}

var defaultMatchers = NewMatcherCache()
