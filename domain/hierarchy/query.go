package hierarchy

import (
	"sort"

	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// Siblings returns the ids of every node that shares at least one parent with
// the given node, excluding the node itself. The union is deduplicated across
// parents and returned sorted; dangling parent references contribute nothing.
func (s *Store) Siblings(id string) ([]string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, apperrors.NewNodeNotFoundError(id)
	}

	seen := make(map[string]struct{})
	for _, pid := range n.Parents {
		p, ok := s.nodes[pid]
		if !ok {
			continue
		}
		for _, cid := range p.Children {
			if cid != id {
				seen[cid] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for sid := range seen {
		out = append(out, sid)
	}
	sort.Strings(out)
	return out, nil
}

// Ancestors returns the ids reachable by following Parents transitively,
// nearest first, excluding the node itself. The walk carries a visited set:
// the multi-parent model permits cycles and nothing in the import path rejects
// them, so traversals must terminate on their own.
func (s *Store) Ancestors(id string) ([]string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, apperrors.NewNodeNotFoundError(id)
	}

	visited := map[string]struct{}{id: {}}
	var out []string
	frontier := append([]string(nil), n.Parents...)
	for len(frontier) > 0 {
		var next []string
		for _, pid := range frontier {
			if _, done := visited[pid]; done {
				continue
			}
			visited[pid] = struct{}{}
			p, ok := s.nodes[pid]
			if !ok {
				continue // dangling reference
			}
			out = append(out, pid)
			next = append(next, p.Parents...)
		}
		frontier = next
	}
	return out, nil
}

// Descendants returns the ids reachable by following Children transitively,
// in breadth-first order, excluding the node itself. Cycle-guarded like
// Ancestors.
func (s *Store) Descendants(id string) ([]string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, apperrors.NewNodeNotFoundError(id)
	}

	visited := map[string]struct{}{id: {}}
	var out []string
	frontier := append([]string(nil), n.Children...)
	for len(frontier) > 0 {
		var next []string
		for _, cid := range frontier {
			if _, done := visited[cid]; done {
				continue
			}
			visited[cid] = struct{}{}
			c, ok := s.nodes[cid]
			if !ok {
				continue
			}
			out = append(out, cid)
			next = append(next, c.Children...)
		}
		frontier = next
	}
	return out, nil
}

// DescendantsOfKind filters Descendants down to nodes of one kind.
func (s *Store) DescendantsOfKind(id string, kind Kind) ([]string, error) {
	all, err := s.Descendants(id)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, did := range all {
		if s.nodes[did].Kind == kind {
			out = append(out, did)
		}
	}
	return out, nil
}
