package classifier

import (
	"regexp"
	"strings"
)

var collectionPattern = regexp.MustCompile(`^(?:typing\.)?(?:List|list|Sequence|Set|set|FrozenSet|frozenset|Iterable|Collection)\[(.+)\]$`)

// StripQuotes removes one pair of matching surrounding quotes, as used by
// forward references such as "other.Animal".
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// IsQualified reports whether name already carries a namespace separator.
func IsQualified(name string) bool {
	return strings.Contains(name, ".")
}

// Qualify prefixes name with namespace unless it is already qualified.
func Qualify(namespace, name string) string {
	if IsQualified(name) {
		return name
	}
	return namespace + "." + name
}

// UnwrapCollection returns the element type of a single-argument collection
// annotation like List[Dog].
func UnwrapCollection(typeName string) (string, bool) {
	m := collectionPattern.FindStringSubmatch(typeName)
	if m == nil {
		return typeName, false
	}
	return m[1], true
}
