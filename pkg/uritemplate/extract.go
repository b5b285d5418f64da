package uritemplate

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate/observability"
)

// Extract recovers the bindings for the variable spec at position from the
// substring a template matcher located for it. A nil matched means the
// variable did not participate in the match and yields an absent binding.
//
// The result holds one binding per call; callers merge results across
// positions left to right with Merge.
//
// Returns ErrPositionOutOfRange for a bad position and a *MatchError when an
// exploded value cannot be decomposed. Extraction after truncation is lossy:
// the recovered value is the truncated text.
//
// Example:
//
//	expr, _ := uritemplate.ParseExpression("{?x,y}")
//	m := "=1024"
//	b, _ := expr.Extract(0, &m)
//	// b: [{Name: "x", Value: Scalar("1024")}]
func (e *Expression) Extract(position int, matched *string) ([]Binding, error) {
	return e.ExtractContext(context.Background(), position, matched)
}

// ExtractContext is Extract with a context for trace propagation.
func (e *Expression) ExtractContext(ctx context.Context, position int, matched *string) ([]Binding, error) {
	if position < 0 || position >= len(e.specs) {
		return nil, fmt.Errorf("%w: %d (arity %d)", ErrPositionOutOfRange, position, len(e.specs))
	}

	ctx, span := e.opts.spans.StartExtractSpan(ctx, e.source, position)
	done := observability.TimedOperation()

	bindings, err := e.extract(ctx, e.specs[position], matched)

	e.opts.metrics.RecordExtraction(ctx, e.op.String(), done(), err)
	e.opts.spans.EndSpanWithError(span, err)
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func (e *Expression) extract(ctx context.Context, spec VarSpec, matched *string) ([]Binding, error) {
	if matched == nil {
		return []Binding{{Name: spec.Name, Value: Absent()}}, nil
	}
	s := *matched

	if spec.Explode {
		v, err := e.extractComposite(ctx, spec, s)
		if err != nil {
			return nil, err
		}
		return []Binding{{Name: spec.Name, Value: v}}, nil
	}

	if e.profile.Named {
		s = e.stripName(spec.Name, s)
	}
	return []Binding{{Name: spec.Name, Value: decodeSplit(s)}}, nil
}

// stripName removes the "name=" or "=" lead of a named rendering.
func (e *Expression) stripName(name, s string) string {
	conn := e.profile.PairConnector
	if rest, ok := strings.CutPrefix(s, conn); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(s, name); ok && (rest == "" || strings.HasPrefix(rest, conn)) {
		return strings.TrimPrefix(rest, conn)
	}
	return s
}

func (e *Expression) extractComposite(ctx context.Context, spec VarSpec, s string) (Value, error) {
	m, compiled, err := e.opts.matchers.lookup(e.op, spec.MaxLength)
	if err != nil {
		return Value{}, err
	}
	if compiled {
		e.opts.metrics.RecordMatcherCompile(ctx, e.op.String(), spec.MaxLength)
		e.opts.spans.AddSpanEvent(ctx, "matcher.compiled",
			attribute.String("template.operator", e.op.String()),
			attribute.Int("template.max_length", spec.MaxLength),
		)
		observability.LogMatcherCompiled(e.opts.logger, e.op.String(), spec.MaxLength, m.re.String())
	}

	pairs, rest, ok := m.split(s)
	if !ok {
		observability.LogMatchFailure(e.opts.logger, e.source, spec.Name, rest)
		return Value{}, &MatchError{Operator: e.op, Name: spec.Name, Remainder: rest}
	}

	if e.profile.Named {
		return groupNamed(spec.Name, pairs), nil
	}
	return collectUnnamed(pairs), nil
}

// groupNamed groups named pairs by key. A single group keyed by the
// variable's own name is that variable's scalar or list; anything else is
// a map with the last value per key.
func groupNamed(name string, pairs []rawPair) Value {
	var keys []string
	values := make(map[string][]string, len(pairs))
	for _, p := range pairs {
		k := unescape(p.key)
		if _, ok := values[k]; !ok {
			keys = append(keys, k)
		}
		values[k] = append(values[k], unescape(p.value))
	}

	if len(keys) == 1 && keys[0] == name {
		vs := values[name]
		if len(vs) == 1 {
			return Scalar(vs[0])
		}
		return List(vs...)
	}

	out := make([]Pair, len(keys))
	for i, k := range keys {
		vs := values[k]
		out[i] = Pair{Key: k, Value: vs[len(vs)-1]}
	}
	return Map(out...)
}

// collectUnnamed returns a list of values, or a map of pairs when any item
// carried a key. Items without a key keep their text as the key.
func collectUnnamed(pairs []rawPair) Value {
	keyed := false
	for _, p := range pairs {
		if p.hasKey {
			keyed = true
			break
		}
	}

	if !keyed {
		items := make([]string, len(pairs))
		for i, p := range pairs {
			items[i] = unescape(p.value)
		}
		return List(items...)
	}

	out := make([]Pair, len(pairs))
	for i, p := range pairs {
		if p.hasKey {
			out[i] = Pair{Key: unescape(p.key), Value: unescape(p.value)}
		} else {
			out[i] = Pair{Key: unescape(p.value)}
		}
	}
	return Map(out...)
}

// decodeSplit decodes a non-exploded rendering. Pieces are separated by
// single commas; a run of n > 1 commas yields an item of n-2 commas
// (n-1 at the end of input). Zero pieces decode to "", one to a scalar and
// more to a list.
func decodeSplit(s string) Value {
	var pieces []string
	for i := 0; i < len(s); {
		if s[i] == ',' {
			j := i + 1
			for j < len(s) && s[j] == ',' {
				j++
			}
			if run := s[i+1 : j]; run != "" {
				if j == len(s) {
					pieces = append(pieces, run)
				} else {
					pieces = append(pieces, run[:len(run)-1])
				}
			}
			i = j
			continue
		}
		j := strings.IndexByte(s[i:], ',')
		if j < 0 {
			j = len(s)
		} else {
			j += i
		}
		pieces = append(pieces, unescape(s[i:j]))
		i = j
	}

	switch len(pieces) {
	case 0:
		return Scalar("")
	case 1:
		return Scalar(pieces[0])
	default:
		return List(pieces...)
	}
}
