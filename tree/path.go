package tree

import (
	"strconv"
	"strings"
)

// Find returns the node at path below the root of t. See [Node.Find].
func (t *Tree) Find(path string) (Node, bool) {
	return t.Root().Find(path)
}

// Find resolves path relative to n. The empty path and "/" refer to n itself.
// Any other path is a sequence of decimal child indices, each preceded by a
// slash, as returned by [Node.Path]. If path is malformed or an index is out of
// range, the second return value is false.
func (n Node) Find(path string) (Node, bool) {
	if !n.IsValid() {
		return Node{}, false
	}
	if path == "" || path == "/" {
		return n, true
	}
	if path[0] != '/' {
		return Node{}, false
	}
	for seg := range strings.SplitSeq(path[1:], "/") {
		i, ok := parseIndex(seg)
		if !ok || i >= n.NumChildren() {
			return Node{}, false
		}
		n = n.Child(i)
	}
	return n, true
}

// parseIndex parses a path segment. Only plain decimal digits are accepted.
func parseIndex(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(s)
	return i, err == nil
}
