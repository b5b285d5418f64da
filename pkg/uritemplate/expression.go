package uritemplate

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/uritemplate/pkg/uritemplate/observability"
)

// VarSpec is one variable reference inside an expression.
type VarSpec struct {
	// Name is the variable name.
	Name string
	// Explode is the "*" modifier.
	Explode bool
	// MaxLength is the ":N" prefix modifier; 0 means no truncation.
	MaxLength int
}

// String renders the spec in template syntax: name[*][:N].
func (s VarSpec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Explode {
		b.WriteByte('*')
	}
	if s.MaxLength > 0 {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.MaxLength))
	}
	return b.String()
}

// Expression is one {...} template segment.
//
// Create with New() or ParseExpression(). An Expression is immutable and
// safe for concurrent use.
type Expression struct {
	op      Operator
	profile *Profile
	specs   []VarSpec
	names   []string
	source  string
	opts    options
}

// New creates an expression from an operator and its variable specs.
//
// Returns ErrUnknownOperator for an undefined operator, ErrNoVariables for
// an empty spec list, and a *SpecError wrapping ErrEmptyVariableName or
// ErrMaxLengthOutOfRange for a malformed spec.
//
// Example:
//
//	expr, err := uritemplate.New(uritemplate.FormQuery, []uritemplate.VarSpec{
//	    {Name: "x"}, {Name: "y"},
//	})
func New(op Operator, specs []VarSpec, opts ...Option) (*Expression, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
	}
	if len(specs) == 0 {
		return nil, ErrNoVariables
	}

	seen := make(map[string]bool, len(specs))
	names := make([]string, 0, len(specs))
	for i, s := range specs {
		switch {
		case s.Name == "":
			return nil, &SpecError{Index: i, Spec: s, Err: ErrEmptyVariableName}
		case s.MaxLength < 0 || s.MaxLength > MaxLengthLimit:
			return nil, &SpecError{Index: i, Spec: s, Err: ErrMaxLengthOutOfRange}
		}
		if !seen[s.Name] {
			seen[s.Name] = true
			names = append(names, s.Name)
		}
	}

	e := &Expression{
		op:      op,
		profile: &profiles[op],
		specs:   append([]VarSpec(nil), specs...),
		names:   names,
		opts:    defaultOptions(),
	}
	for _, opt := range opts {
		opt(&e.opts)
	}
	e.source = e.render()
	return e, nil
}

// Operator returns the expression operator.
func (e *Expression) Operator() Operator { return e.op }

// Specs returns a copy of the variable specs in source order.
func (e *Expression) Specs() []VarSpec {
	return append([]VarSpec(nil), e.specs...)
}

// Variables returns the distinct variable names in first-seen order.
func (e *Expression) Variables() []string {
	return append([]string(nil), e.names...)
}

// Arity returns the number of variable specs, counting repeats.
func (e *Expression) Arity() int { return len(e.specs) }

// Expands reports whether any variable carries the explode modifier.
func (e *Expression) Expands() bool {
	for _, s := range e.specs {
		if s.Explode {
			return true
		}
	}
	return false
}

// Level returns the RFC 6570 level the expression requires.
func (e *Expression) Level() int {
	for _, s := range e.specs {
		if s.Explode || s.MaxLength > 0 {
			return 4
		}
	}
	if len(e.specs) == 1 {
		return e.profile.BaseLevel
	}
	return 3
}

// String returns the canonical template source, e.g. "{?x,list*,name:3}".
func (e *Expression) String() string { return e.source }

func (e *Expression) render() string {
	parts := make([]string, len(e.specs))
	for i, s := range e.specs {
		parts[i] = s.String()
	}
	return "{" + e.profile.Token + strings.Join(parts, ",") + "}"
}

// Expand renders the expression against vars. Values are coerced with
// ValueOf; missing and nil entries are skipped.
//
// Returns a *LengthLimitError, and no output, when a variable with a prefix
// modifier is bound to a list or map.
//
// Example:
//
//	expr, _ := uritemplate.ParseExpression("{?x,y}")
//	s, _ := expr.Expand(map[string]any{"x": 1024, "y": 768})
//	// s: "?x=1024&y=768"
func (e *Expression) Expand(vars map[string]any) (string, error) {
	return e.ExpandContext(context.Background(), vars)
}

// ExpandContext is Expand with a context for trace propagation.
func (e *Expression) ExpandContext(ctx context.Context, vars map[string]any) (string, error) {
	ctx, span := e.opts.spans.StartExpandSpan(ctx, e.source)
	done := observability.TimedOperation()

	out, err := e.expand(vars)

	e.opts.metrics.RecordExpansion(ctx, e.op.String(), done(), err)
	e.opts.spans.EndSpanWithError(span, err)
	if err != nil {
		observability.LogExpansionError(e.opts.logger, e.source, err)
		return "", err
	}
	return out, nil
}

func (e *Expression) expand(vars map[string]any) (string, error) {
	var fragments []string
	for _, spec := range e.specs {
		raw, ok := vars[spec.Name]
		if !ok {
			continue
		}
		v := ValueOf(raw)
		if v.IsAbsent() {
			continue
		}
		if spec.MaxLength > 0 && (v.Kind() == KindList || v.Kind() == KindMap) {
			return "", &LengthLimitError{Name: spec.Name, Value: v}
		}
		fragments = append(fragments, e.profile.render(spec, v)...)
	}
	if len(fragments) == 0 {
		return "", nil
	}
	return e.profile.Prefix + strings.Join(fragments, e.profile.Separator), nil
}
