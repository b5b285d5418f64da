/*
Package uritemplate implements RFC 6570 URI template expressions: expansion
of variable bindings into URI fragments and extraction of bindings back out
of expanded fragments.

# Overview

An Expression is one {...} segment of a template: an operator and an ordered
list of variable specs. Splitting a full template into literal text and
expressions, and matching a whole URI against it, belong to the caller.

	expr, err := uritemplate.ParseExpression("{?x,y}")
	if err != nil {
	    return err
	}
	s, err := expr.Expand(map[string]any{"x": 1024, "y": 768})
	// s: "?x=1024&y=768"

# Operators

	{var}     Basic                  value,value
	{+var}    Reserved               reserved characters pass through
	{#var}    Fragment               "#" prefix, reserved characters pass through
	{.var}    Label                  ".value.value"
	{/var}    Path                   "/value/value"
	{;var}    PathParameters         ";name=value", bare ";name" when empty
	{?var}    FormQuery              "?name=value&name=value"
	{&var}    FormQueryContinuation  "&name=value"

Each operator is a row of constants (Profile) rather than a type.

# Values

Bindings are coerced with ValueOf into one of four shapes: absent, scalar,
list, or map. Go maps render in sorted key order.

	expr := uritemplate.MustParseExpression("{/list*}")
	s, _ := expr.Expand(map[string]any{"list": []string{"1", "2", "3"}})
	// s: "/1/2/3"

The explode modifier "*" renders each list element or map entry as its own
fragment. The prefix modifier ":N" truncates a scalar's escaped form to N
characters; applying it to a list or map is a *LengthLimitError.

# Extraction

Extract reverses expansion for a single variable, given the substring a
template matcher located for it:

	expr := uritemplate.MustParseExpression("{list}")
	m := "red,green,blue"
	b, _ := expr.Extract(0, &m)
	// b[0].Value: List("red", "green", "blue")

Exploded values are decomposed with a matcher compiled per operator and
prefix length and cached in a MatcherCache. A named operator whose only key
equals the variable name yields that variable's scalar or list; any other
keys yield a map.

# Thread Safety

Expressions are immutable and safe for concurrent use. The matcher cache
tolerates concurrent first compilation of the same matcher.
*/
package uritemplate
