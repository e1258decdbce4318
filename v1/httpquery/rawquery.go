package httpquery

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/Aleph-Alpha/querystd/v1/queryparser"
)

// maxBracketDepth bounds how many bracket segments of a key are expanded.
// Deeper segments are kept as one literal key.
const maxBracketDepth = 5

// ParseRawQuery decodes a raw query string into parser parameters,
// expanding bracket syntax into ordered structures:
//
//	sort[name]=desc&sort[age]=asc  -> sort: {name: "desc", age: "asc"} (bson.D)
//	ids[]=a&ids[]=b                -> ids: ["a", "b"] (bson.A)
//	regex[0][key]=name             -> regex: [{key: "name"}]
//	tag=a&tag=b                    -> tag: []string{"a", "b"}
//
// Keys keep their order of appearance. Only percent-decoding errors are
// returned.
func ParseRawQuery(raw string) (queryparser.Params, error) {
	type entry struct {
		plain []string
		tree  *node
	}
	entries := make(map[string]*entry)

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("invalid query key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", key, err)
		}

		base, segments := splitKey(key)
		if base == "" {
			continue
		}
		e, ok := entries[base]
		if !ok {
			e = &entry{}
			entries[base] = e
		}

		if segments == nil {
			e.plain = append(e.plain, value)
			continue
		}
		if e.tree == nil {
			e.tree = newNode()
		}
		e.tree.insert(segments, value)
	}

	params := make(queryparser.Params, len(entries))
	for base, e := range entries {
		switch {
		case e.tree != nil:
			params[base] = e.tree.build()
		case len(e.plain) == 1:
			params[base] = e.plain[0]
		default:
			params[base] = e.plain
		}
	}
	return params, nil
}

// FromValues converts url.Values into parser parameters without bracket
// expansion. Single values become strings.
func FromValues(values url.Values) queryparser.Params {
	params := make(queryparser.Params, len(values))
	for k, v := range values {
		if len(v) == 1 {
			params[k] = v[0]
			continue
		}
		params[k] = append([]string(nil), v...)
	}
	return params
}

// splitKey splits "a[b][]" into "a" and ["b", ""]. A key without brackets,
// or with an unterminated bracket, has no segments.
func splitKey(key string) (string, []string) {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return key, nil
	}

	base, rest := key[:open], key[open:]
	var segments []string
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			break
		}
		if len(segments) == maxBracketDepth {
			segments = append(segments, rest)
			rest = ""
			break
		}
		segments = append(segments, rest[1:end])
		rest = rest[end+1:]
	}

	if segments == nil || rest != "" {
		return key, nil
	}
	return base, segments
}

// node is an intermediate tree for bracket keys.
type node struct {
	values   []string
	keys     []string
	children map[string]*node
	appended []*node
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) insert(segments []string, value string) {
	if len(segments) == 0 {
		n.values = append(n.values, value)
		return
	}

	seg := segments[0]
	if seg == "" {
		child := newNode()
		n.appended = append(n.appended, child)
		child.insert(segments[1:], value)
		return
	}

	child, ok := n.children[seg]
	if !ok {
		child = newNode()
		n.children[seg] = child
		n.keys = append(n.keys, seg)
	}
	child.insert(segments[1:], value)
}

// build converts the node into a string, []string, bson.A or bson.D.
func (n *node) build() any {
	if len(n.keys) == 0 && len(n.appended) == 0 {
		if len(n.values) == 1 {
			return n.values[0]
		}
		return append([]string(nil), n.values...)
	}

	if len(n.keys) == 0 {
		out := make(bson.A, len(n.appended))
		for i, child := range n.appended {
			out[i] = child.build()
		}
		return out
	}

	if indexes, ok := n.numericKeys(); ok && len(n.appended) == 0 {
		out := make(bson.A, len(indexes))
		for i, key := range indexes {
			out[i] = n.children[key].build()
		}
		return out
	}

	doc := make(bson.D, 0, len(n.keys)+len(n.appended))
	for _, key := range n.keys {
		doc = append(doc, bson.E{Key: key, Value: n.children[key].build()})
	}
	for i, child := range n.appended {
		doc = append(doc, bson.E{Key: strconv.Itoa(len(n.keys) + i), Value: child.build()})
	}
	return doc
}

// numericKeys returns the keys sorted by index when every key is a
// non-negative integer.
func (n *node) numericKeys() ([]string, bool) {
	type indexed struct {
		key string
		idx int
	}
	items := make([]indexed, 0, len(n.keys))
	for _, key := range n.keys {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, false
		}
		items = append(items, indexed{key: key, idx: idx})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].idx < items[j].idx })

	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.key
	}
	return out, true
}
