package uritemplate

import "strings"

// pair renders key=value from an already escaped value, truncated to
// maxLength class units. With PairIfEmpty unset an empty value renders
// the bare key.
func (p *Profile) pair(key, escaped string, maxLength int) string {
	if !p.PairIfEmpty && escaped == "" {
		return key
	}
	return key + p.PairConnector + p.Class.cut(escaped, maxLength)
}

// selfPair renders a value under the variable's own name. Unnamed
// operators drop the name and emit only the value.
func (p *Profile) selfPair(name, escaped string, maxLength int) string {
	if p.Named {
		return p.pair(name, escaped, maxLength)
	}
	return p.Class.cut(escaped, maxLength)
}

// render turns one bound value into zero or more fragments. The caller
// has already rejected absent values and length limits on composites.
func (p *Profile) render(spec VarSpec, v Value) []string {
	switch v.Kind() {
	case KindScalar:
		return []string{p.selfPair(spec.Name, p.Class.escape(v.String()), spec.MaxLength)}

	case KindList:
		items := v.Items()
		if spec.Explode {
			out := make([]string, len(items))
			for i, item := range items {
				out[i] = p.selfPair(spec.Name, p.Class.escape(item), 0)
			}
			return out
		}
		if len(items) == 0 && !p.Named {
			return nil
		}
		escaped := make([]string, len(items))
		for i, item := range items {
			escaped[i] = p.Class.escape(item)
		}
		return []string{p.selfPair(spec.Name, strings.Join(escaped, p.ListConnector), 0)}

	case KindMap:
		pairs := v.Pairs()
		if spec.Explode {
			out := make([]string, len(pairs))
			for i, kv := range pairs {
				out[i] = p.pair(p.Class.escape(kv.Key), p.Class.escape(kv.Value), 0)
			}
			return out
		}
		if len(pairs) == 0 && !p.Named {
			return nil
		}
		parts := make([]string, 0, 2*len(pairs))
		for _, kv := range pairs {
			parts = append(parts, p.Class.escape(kv.Key), p.Class.escape(kv.Value))
		}
		return []string{p.selfPair(spec.Name, strings.Join(parts, p.ListConnector), 0)}
	}
	return nil
}
