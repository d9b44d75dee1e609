package hierarchy

import (
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// Store is the in-memory arena of hierarchy nodes, keyed by id. It owns every
// mutation and keeps the parent/child lists as maintained inverses: whenever a
// node lists P among its parents, P lists the node among its children, and the
// other way round.
//
// A Store assumes exclusive access. It does no locking of its own; callers
// that share one store across goroutines must serialize around it (the
// workspace service holds one mutex per store).
type Store struct {
	nodes map[string]*Node
	order []string // insertion order; exports and root selection depend on it
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[string]*Node)}
}

// Len returns the number of nodes in the store.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Get returns the node with the given id.
func (s *Store) Get(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// IDs returns every node id in insertion order.
func (s *Store) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// FirstRoot returns the id of the first node, in insertion order, that has no
// parents. It is the node the presentation layer focuses after an import.
// Returns "" when the store has no root at all.
func (s *Store) FirstRoot() string {
	for _, id := range s.order {
		if s.nodes[id].IsRoot() {
			return id
		}
	}
	return ""
}

// Add inserts a new node built from its parts. The insert is rejected without
// any mutation when the id is already taken. A non-empty parentID becomes the
// node's single parent; if that parent is not in the store the link is simply
// not made on the parent side, so a later Put of the parent can still pick it
// up through RelinkChildren.
func (s *Store) Add(id, name string, kind Kind, definition, parentID string) error {
	if _, ok := s.nodes[id]; ok {
		return apperrors.NewDuplicateIDError(id)
	}

	n := &Node{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Definition: definition,
	}
	if parentID != "" {
		n.Parents = []string{parentID}
	}

	s.nodes[id] = n
	s.order = append(s.order, id)

	if parentID != "" {
		if p, ok := s.nodes[parentID]; ok {
			p.Children = append(p.Children, id)
		}
	}
	return nil
}

// Put inserts a fully formed node without touching any links. The table
// parsers use it to lay down every row first and wire children up in a second
// pass. A node with a taken id replaces the existing one in place, keeping its
// position in the insertion order; that is the last-row-wins behavior of the
// legacy importer. Interactive additions go through Add, which rejects
// collisions instead.
func (s *Store) Put(n *Node) {
	if _, ok := s.nodes[n.ID]; !ok {
		s.order = append(s.order, n.ID)
	}
	s.nodes[n.ID] = n
}

// Link records parentID as an additional parent of childID, maintaining both
// sides. Links that already exist are not duplicated.
func (s *Store) Link(parentID, childID string) error {
	p, ok := s.nodes[parentID]
	if !ok {
		return apperrors.NewNodeNotFoundError(parentID)
	}
	c, ok := s.nodes[childID]
	if !ok {
		return apperrors.NewNodeNotFoundError(childID)
	}
	for _, pid := range c.Parents {
		if pid == parentID {
			return nil
		}
	}
	c.Parents = append(c.Parents, parentID)
	p.Children = append(p.Children, childID)
	return nil
}

// RelinkChildren rebuilds every node's Children list from the Parents lists.
// Parent ids that do not resolve are skipped; imported data may reference
// nodes that were never defined.
func (s *Store) RelinkChildren() {
	for _, id := range s.order {
		s.nodes[id].Children = nil
	}
	for _, id := range s.order {
		for _, pid := range s.nodes[id].Parents {
			if p, ok := s.nodes[pid]; ok {
				p.Children = append(p.Children, id)
			}
		}
	}
}

// Edit renames a node and, for entry nodes only, replaces its definition.
// Other kinds keep whatever definition they already carry.
func (s *Store) Edit(id, name, definition string) error {
	n, ok := s.nodes[id]
	if !ok {
		return apperrors.NewNodeNotFoundError(id)
	}
	n.Name = name
	if n.Kind.IsEntry() {
		n.Definition = definition
	}
	return nil
}

// Delete removes a leaf node and returns the id of its former first parent as
// the new navigation focus ("" when a root was deleted). Deleting a node that
// still has children is rejected.
//
// Only the first parent's child link is severed. A node listing several
// parents leaves stale references behind in the remaining parents' Children
// lists; readers already skip dangling ids, and this matches the legacy
// behavior rather than fixing it silently.
func (s *Store) Delete(id string) (string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return "", apperrors.NewNodeNotFoundError(id)
	}
	if len(n.Children) > 0 {
		return "", apperrors.NewHasChildrenError(id, len(n.Children))
	}

	focus := ""
	if len(n.Parents) > 0 {
		focus = n.Parents[0]
		if p, ok := s.nodes[focus]; ok {
			p.Children = removeID(p.Children, id)
		}
	}

	delete(s.nodes, id)
	s.order = removeID(s.order, id)
	return focus, nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
