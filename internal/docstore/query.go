package docstore

import (
	"regexp"
	"strings"
)

// Matches reports whether doc satisfies every clause of q. Kind is matched
// first; Or branches are satisfied when at least one branch matches.
func (q Query) Matches(doc Document) bool {
	if q.Kind != "" {
		kind, _ := doc[FieldKind].(string)
		if kind != q.Kind {
			return false
		}
	}

	if !matchesFieldClauses(doc, q) {
		return false
	}

	if len(q.Or) > 0 {
		matched := false
		for _, branch := range q.Or {
			if matchesFieldClauses(doc, branch) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

func matchesFieldClauses(doc Document, q Query) bool {
	for field, want := range q.Equals {
		got, ok := lookupPath(doc, field)
		if !ok || !valuesEqual(got, want) {
			return false
		}
	}

	for field, want := range q.ArrayContains {
		got, ok := lookupPath(doc, field)
		if !ok || !arrayContains(got, want) {
			return false
		}
	}

	for field, pattern := range q.Regex {
		got, ok := lookupPath(doc, field)
		if !ok || !regexMatches(got, pattern) {
			return false
		}
	}

	return true
}

// lookupPath resolves a dotted field path into nested objects.
func lookupPath(doc Document, path string) (interface{}, bool) {
	var current interface{} = map[string]interface{}(doc)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asObject(v interface{}) (map[string]interface{}, bool) {
	switch value := v.(type) {
	case Document:
		return value, true
	case map[string]interface{}:
		return value, true
	}
	return nil, false
}

// valuesEqual compares scalars, normalizing numeric types so that values
// that went through a JSON round-trip still compare equal.
func valuesEqual(a, b interface{}) bool {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func arrayContains(value interface{}, want string) bool {
	for _, elem := range asStrings(value) {
		if elem == want {
			return true
		}
	}
	return false
}

func regexMatches(value interface{}, pattern string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		// Treat an uncompilable pattern as a literal substring search.
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}

	if s, ok := value.(string); ok {
		return re.MatchString(s)
	}
	for _, elem := range asStrings(value) {
		if re.MatchString(elem) {
			return true
		}
	}
	return false
}

func asStrings(value interface{}) []string {
	switch arr := value.(type) {
	case []string:
		return arr
	case []interface{}:
		out := make([]string, 0, len(arr))
		for _, elem := range arr {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
