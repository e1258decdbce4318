package qdrant

import (
	"sort"

	qdrant "github.com/qdrant/go-client/qdrant"
)

func conditionsByKey(conditions []*qdrant.Condition) map[string]*qdrant.FieldCondition {
	out := make(map[string]*qdrant.FieldCondition, len(conditions))
	for _, c := range conditions {
		if f := c.GetField(); f != nil {
			out[f.GetKey()] = f
		}
	}
	return out
}

func keys(m map[string]*qdrant.FieldCondition) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
