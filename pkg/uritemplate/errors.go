package uritemplate

import (
	"errors"
	"fmt"
)

// MaxLengthLimit is the largest prefix modifier accepted (":9999").
const MaxLengthLimit = 9999

// Sentinel errors for expression construction.
var (
	// ErrNoVariables indicates an expression without variable specs.
	ErrNoVariables = errors.New("expression has no variables")

	// ErrEmptyVariableName indicates a variable spec with an empty name.
	ErrEmptyVariableName = errors.New("variable name is empty")

	// ErrMaxLengthOutOfRange indicates a prefix modifier outside 0..MaxLengthLimit.
	ErrMaxLengthOutOfRange = errors.New("max length out of range")

	// ErrUnknownOperator indicates an operator outside the defined set.
	ErrUnknownOperator = errors.New("unknown operator")
)

// Sentinel errors for expansion and extraction.
var (
	// ErrLengthLimitInapplicable indicates a prefix modifier applied to a list or map.
	ErrLengthLimitInapplicable = errors.New("length limit inapplicable to composite value")

	// ErrInternalMatch indicates the composite matcher could not consume its input.
	ErrInternalMatch = errors.New("composite matcher failed")

	// ErrPositionOutOfRange indicates an extraction position with no variable spec.
	ErrPositionOutOfRange = errors.New("variable position out of range")
)

// SpecError wraps a construction error with the offending variable spec.
type SpecError struct {
	// Index is the position of the spec within the expression.
	Index int
	// Spec is the rejected variable spec.
	Spec VarSpec
	// Err is the underlying sentinel.
	Err error
}

// Error implements the error interface.
func (e *SpecError) Error() string {
	return fmt.Sprintf("variable %d (%q): %v", e.Index, e.Spec.Name, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SpecError) Unwrap() error {
	return e.Err
}

// LengthLimitError is returned by Expand when a variable with a prefix
// modifier is bound to a list or map.
type LengthLimitError struct {
	// Name is the variable name.
	Name string
	// Value is the offending binding.
	Value Value
}

// Error implements the error interface.
func (e *LengthLimitError) Error() string {
	return fmt.Sprintf("variable %s: %s value cannot take a length limit", e.Name, e.Value.Kind())
}

// Unwrap returns ErrLengthLimitInapplicable for errors.Is support.
func (e *LengthLimitError) Unwrap() error {
	return ErrLengthLimitInapplicable
}

// MatchError reports a composite extraction the matcher could not consume.
// It indicates a defect in matcher construction or input that was not
// produced by the same expression.
type MatchError struct {
	// Operator is the expression operator.
	Operator Operator
	// Name is the variable being extracted.
	Name string
	// Remainder is the unconsumed input.
	Remainder string
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	return fmt.Sprintf("%s matcher for %s could not consume %q", e.Operator, e.Name, e.Remainder)
}

// Unwrap returns ErrInternalMatch for errors.Is support.
func (e *MatchError) Unwrap() error {
	return ErrInternalMatch
}

// SyntaxError reports malformed expression source.
type SyntaxError struct {
	// Source is the text being parsed.
	Source string
	// Offset is the byte offset of the problem.
	Offset int
	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Offset, e.Source, e.Msg)
}
