package queryparser

// Reserved parameter names. They are interpreted by the parser and never
// forwarded as field filters. Changing this set is a breaking change.
const (
	KeyPerPage    = "perPage"
	KeyPage       = "page"
	KeyLimit      = "limit"
	KeySort       = "sort"
	KeyAll        = "all"
	KeyIncludes   = "includes"
	KeySelection  = "selection"
	KeyPopulation = "population"
	KeySearch     = "search"
	KeyRegex      = "regex"
	KeyNested     = "nested"
	KeyCondition  = "condition"
)

var reservedKeys = map[string]struct{}{
	KeyPerPage:    {},
	KeyPage:       {},
	KeyLimit:      {},
	KeySort:       {},
	KeyAll:        {},
	KeyIncludes:   {},
	KeySelection:  {},
	KeyPopulation: {},
	KeySearch:     {},
	KeyRegex:      {},
	KeyNested:     {},
	KeyCondition:  {},
}

// hintKeys are reserved keys exposed unchanged through Query.Hint.
var hintKeys = []string{KeyPerPage, KeyPage, KeyLimit, KeyIncludes}

// ReservedKeys returns the reserved parameter names in a stable order.
func ReservedKeys() []string {
	return []string{
		KeyPerPage, KeyPage, KeyLimit, KeySort, KeyAll, KeyIncludes,
		KeySelection, KeyPopulation, KeySearch, KeyRegex, KeyNested, KeyCondition,
	}
}

// IsReserved reports whether key is a reserved parameter name.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}
