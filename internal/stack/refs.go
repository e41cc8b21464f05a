// File: internal/stack/refs.go
// Brief: Parameter output-reference parsing and substitution.

package stack

import "regexp"

// Ref is a single ${stack.key} occurrence inside a parameter value.
type Ref struct {
	Stack string
	Key   string
}

var refRe = regexp.MustCompile(`\$\{([a-zA-Z0-9-]+)\.([a-zA-Z0-9_.-]+)\}`)

// ParseRefs extracts every output reference embedded in a parameter value.
// Literal text around references is preserved by SubstituteRefs.
func ParseRefs(value string) []Ref {
	matches := refRe.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return nil
	}
	refs := make([]Ref, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Ref{Stack: m[1], Key: m[2]})
	}
	return refs
}

// SubstituteRefs rewrites every reference in value through lookup. When
// lookup reports a miss the whole occurrence is replaced by fallback and
// substituted is false for the return.
func SubstituteRefs(value string, lookup func(Ref) (string, bool), fallback string) (string, bool) {
	complete := true
	out := refRe.ReplaceAllStringFunc(value, func(m string) string {
		sub := refRe.FindStringSubmatch(m)
		ref := Ref{Stack: sub[1], Key: sub[2]}
		if v, ok := lookup(ref); ok {
			return v
		}
		complete = false
		return fallback
	})
	return out, complete
}
