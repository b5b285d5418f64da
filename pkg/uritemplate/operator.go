package uritemplate

// Operator selects the prefix, separator and escaping rules of an expression.
type Operator int

const (
	// Basic is simple string expansion: {var}.
	Basic Operator = iota

	// Reserved is reserved expansion: {+var}.
	Reserved

	// Fragment is fragment expansion: {#var}.
	Fragment

	// Label is label expansion with dot prefix: {.var}.
	Label

	// Path is path segment expansion: {/var}.
	Path

	// PathParameters is path-style parameter expansion: {;var}.
	PathParameters

	// FormQuery is form-style query expansion: {?var}.
	FormQuery

	// FormQueryContinuation is form-style query continuation: {&var}.
	FormQueryContinuation
)

// CharClass identifies the set of characters an operator emits unescaped.
type CharClass int

const (
	// ClassUnreserved allows ALPHA, DIGIT, "-", ".", "_" and "~".
	ClassUnreserved CharClass = iota

	// ClassReservedPct additionally allows reserved characters and
	// existing pct-encoded triplets.
	ClassReservedPct
)

// Profile holds the constants that drive rendering and extraction for one operator.
type Profile struct {
	Prefix        string
	Separator     string
	PairConnector string
	ListConnector string
	Token         string
	BaseLevel     int
	Class         CharClass
	// PairIfEmpty reports whether an empty value still renders "name=".
	PairIfEmpty bool
	// Named reports whether scalars render as name=value pairs.
	Named bool
}

var profiles = [...]Profile{
	Basic: {
		Separator: ",", PairConnector: "=", ListConnector: ",",
		BaseLevel: 1, Class: ClassUnreserved, PairIfEmpty: true,
	},
	Reserved: {
		Separator: ",", PairConnector: "=", ListConnector: ",", Token: "+",
		BaseLevel: 2, Class: ClassReservedPct, PairIfEmpty: true,
	},
	Fragment: {
		Prefix: "#", Separator: ",", PairConnector: "=", ListConnector: ",", Token: "#",
		BaseLevel: 2, Class: ClassReservedPct, PairIfEmpty: true,
	},
	Label: {
		Prefix: ".", Separator: ".", PairConnector: "=", ListConnector: ",", Token: ".",
		BaseLevel: 3, Class: ClassUnreserved, PairIfEmpty: true,
	},
	Path: {
		Prefix: "/", Separator: "/", PairConnector: "=", ListConnector: ",", Token: "/",
		BaseLevel: 3, Class: ClassUnreserved, PairIfEmpty: true,
	},
	PathParameters: {
		Prefix: ";", Separator: ";", PairConnector: "=", ListConnector: ",", Token: ";",
		BaseLevel: 3, Class: ClassUnreserved, PairIfEmpty: false, Named: true,
	},
	FormQuery: {
		Prefix: "?", Separator: "&", PairConnector: "=", ListConnector: ",", Token: "?",
		BaseLevel: 3, Class: ClassUnreserved, PairIfEmpty: true, Named: true,
	},
	FormQueryContinuation: {
		Prefix: "&", Separator: "&", PairConnector: "=", ListConnector: ",", Token: "&",
		BaseLevel: 3, Class: ClassUnreserved, PairIfEmpty: true, Named: true,
	},
}

var operatorNames = [...]string{
	Basic:                 "basic",
	Reserved:              "reserved",
	Fragment:              "fragment",
	Label:                 "label",
	Path:                  "path",
	PathParameters:        "path_parameters",
	FormQuery:             "form_query",
	FormQueryContinuation: "form_query_continuation",
}

// Valid reports whether o is one of the eight defined operators.
func (o Operator) Valid() bool {
	return o >= Basic && o <= FormQueryContinuation
}

// Profile returns the operator's constants. It panics for an invalid operator.
func (o Operator) Profile() Profile {
	return profiles[o]
}

// Token returns the operator character as written in template source.
func (o Operator) Token() string {
	return profiles[o].Token
}

// String returns the operator name.
func (o Operator) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return operatorNames[o]
}

// OperatorForToken returns the operator written as token ("" for Basic).
func OperatorForToken(token string) (Operator, bool) {
	for i := range profiles {
		if profiles[i].Token == token {
			return Operator(i), true
		}
	}
	return Basic, false
}
