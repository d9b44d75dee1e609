// Package hierarchy implements the in-memory concept hierarchy: an arena of
// nodes keyed by id, linked to each other by plain id references. Parents and
// Children are maintained as inverses of one another across the whole store;
// the model is a DAG rather than a strict tree, since a node may list several
// parents.
package hierarchy

// Node is one entry in the hierarchy (a chapter, section, topic or entry).
//
// Entries in Parents and Children may reference ids that are absent from the
// store. Imported workbooks are allowed to be inconsistent, so readers skip
// dangling references instead of failing on them.
type Node struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Kind       Kind     `json:"kind"`
	Definition string   `json:"definition,omitempty"`
	Parents    []string `json:"parents"`
	Children   []string `json:"children"`
}

// IsRoot reports whether the node has no parents.
func (n *Node) IsRoot() bool {
	return len(n.Parents) == 0
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}
