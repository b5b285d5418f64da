package uritemplate

import (
	"regexp"
	"strconv"
	"strings"
)

// varSpecPattern matches varname [ "*" ] [ ":" max-length ].
var varSpecPattern = regexp.MustCompile(
	`^((?:[A-Za-z0-9_]|%[0-9A-Fa-f]{2})+(?:\.(?:[A-Za-z0-9_]|%[0-9A-Fa-f]{2})+)*)(\*)?(?::([1-9][0-9]{0,3}))?$`,
)

// ParseExpression parses one {...} expression, e.g. "{?x,list*,name:3}".
//
// The reserved operators "=", ",", "!", "@" and "|" are rejected. Errors are
// *SyntaxError values carrying the byte offset of the problem.
//
// Example:
//
//	expr, err := uritemplate.ParseExpression("{/path*}")
//	s, _ := expr.Expand(map[string]any{"path": []string{"a", "b"}})
//	// s: "/a/b"
func ParseExpression(src string, opts ...Option) (*Expression, error) {
	if len(src) < 2 || src[0] != '{' || src[len(src)-1] != '}' {
		return nil, &SyntaxError{Source: src, Offset: 0, Msg: "expression must be enclosed in braces"}
	}

	body := src[1 : len(src)-1]
	offset := 1
	op := Basic
	if body != "" {
		switch c := body[0]; c {
		case '+', '#', '.', '/', ';', '?', '&':
			op, _ = OperatorForToken(body[:1])
			body = body[1:]
			offset++
		case '=', ',', '!', '@', '|':
			return nil, &SyntaxError{Source: src, Offset: offset, Msg: "reserved operator " + strconv.Quote(string(c))}
		}
	}
	if body == "" {
		return nil, &SyntaxError{Source: src, Offset: offset, Msg: "empty variable list"}
	}

	var specs []VarSpec
	for _, part := range strings.Split(body, ",") {
		m := varSpecPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, &SyntaxError{Source: src, Offset: offset, Msg: "invalid variable spec " + strconv.Quote(part)}
		}
		spec := VarSpec{Name: m[1], Explode: m[2] != ""}
		if m[3] != "" {
			// At most four digits, so this cannot overflow.
			spec.MaxLength, _ = strconv.Atoi(m[3])
		}
		specs = append(specs, spec)
		offset += len(part) + 1
	}

	return New(op, specs, opts...)
}

// MustParseExpression is like ParseExpression but panics on error.
// Use it for expressions known at compile time.
func MustParseExpression(src string, opts ...Option) *Expression {
	e, err := ParseExpression(src, opts...)
	if err != nil {
		panic("uritemplate: " + err.Error())
	}
	return e
}
