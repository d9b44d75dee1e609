// Package services holds the application services that sit between the HTTP
// layer and the hierarchy core. The core receives its store and focus
// explicitly; everything session-like (which workspaces exist, which node the
// user is looking at) lives here.
package services

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/walidMaaninou/lexi-build/application/ports"
	"github.com/walidMaaninou/lexi-build/application/tabular"
	"github.com/walidMaaninou/lexi-build/domain/hierarchy"
	apperrors "github.com/walidMaaninou/lexi-build/pkg/errors"
)

// RootID is the id of the root node of a freshly bootstrapped workspace.
const RootID = "br-1"

// Workspace couples one hierarchy store with the navigation state of its
// user: a display name and the currently focused node. The per-workspace
// mutex serializes every operation that touches the store, because the store
// itself assumes exclusive access.
type Workspace struct {
	id    string
	name  string
	store *hierarchy.Store
	focus string
	mu    sync.Mutex
}

// WorkspaceInfo is the external view of a workspace.
type WorkspaceInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Focus     string `json:"focus"`
	NodeCount int    `json:"node_count"`
}

// NodeSummary is the minimal node view used in navigation lists.
type NodeSummary struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Kind hierarchy.Kind `json:"kind"`
}

// NodeDetail is the full navigation view of one node: the node itself plus
// resolved summaries of its parents, children and siblings. Dangling
// references are simply absent from the lists.
type NodeDetail struct {
	Node     hierarchy.Node `json:"node"`
	Parents  []NodeSummary  `json:"parents"`
	Children []NodeSummary  `json:"children"`
	Siblings []NodeSummary  `json:"siblings"`
}

// TreeNode is one node of the rendered outline.
type TreeNode struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     hierarchy.Kind `json:"kind"`
	Children []*TreeNode    `json:"children,omitempty"`
}

// AddNodeInput describes a contextual single-node addition.
type AddNodeInput struct {
	Name       string
	Relation   string // "child" (default), "sibling" or "parent" of the anchor
	AnchorID   string // defaults to the workspace focus
	Kind       string // optional explicit kind label; otherwise inferred
	Definition string
}

// WorkspaceService owns the registry of live workspaces and orchestrates
// imports, exports and mutations against their stores.
type WorkspaceService struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	codec      ports.SpreadsheetCodec
	logger     *zap.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(codec ports.SpreadsheetCodec, logger *zap.Logger) *WorkspaceService {
	return &WorkspaceService{
		workspaces: make(map[string]*Workspace),
		codec:      codec,
		logger:     logger,
	}
}

// Create bootstraps a workspace containing a single category root named
// rootName, with the focus on it.
func (s *WorkspaceService) Create(rootName string) (WorkspaceInfo, error) {
	rootName = strings.TrimSpace(rootName)
	if rootName == "" {
		return WorkspaceInfo{}, apperrors.NewValidationError("root name is required")
	}

	store := hierarchy.NewStore()
	if err := store.Add(RootID, rootName, hierarchy.KindCategory, "", ""); err != nil {
		return WorkspaceInfo{}, err
	}

	ws := &Workspace{
		id:    uuid.New().String(),
		name:  rootName,
		store: store,
		focus: RootID,
	}

	s.mu.Lock()
	s.workspaces[ws.id] = ws
	s.mu.Unlock()

	s.logger.Info("Workspace created",
		zap.String("workspaceID", ws.id),
		zap.String("root", rootName),
	)
	return s.info(ws), nil
}

// Import builds a workspace from an uploaded workbook. The relational parser
// runs first; when it reports a malformed table the same sheet is re-parsed,
// header row included, as a column-indented outline. The focus lands on the
// first root in insertion order.
func (s *WorkspaceService) Import(ctx context.Context, name string, r io.Reader) (WorkspaceInfo, error) {
	rows, err := s.codec.Read(r)
	if err != nil {
		return WorkspaceInfo{}, err
	}

	parser := "relational"
	store, err := tabular.BuildFromRelational(tabular.WithHeader(rows))
	if err != nil {
		if !apperrors.IsMalformedImport(err) {
			return WorkspaceInfo{}, err
		}
		parser = "outline"
		store = tabular.BuildFromOutline(tabular.Headerless(rows))
	}

	ws := &Workspace{
		id:    uuid.New().String(),
		name:  name,
		store: store,
		focus: store.FirstRoot(),
	}

	s.mu.Lock()
	s.workspaces[ws.id] = ws
	s.mu.Unlock()

	s.logger.Info("Workbook imported",
		zap.String("workspaceID", ws.id),
		zap.String("file", name),
		zap.String("parser", parser),
		zap.Int("nodes", store.Len()),
	)
	return s.info(ws), nil
}

// Export writes the workspace's store to w in the flat relational workbook
// layout.
func (s *WorkspaceService) Export(ctx context.Context, workspaceID string, w io.Writer) error {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return err
	}
	ws.mu.Lock()
	table := tabular.Export(ws.store)
	ws.mu.Unlock()

	if err := s.codec.Write(w, table); err != nil {
		return apperrors.Wrap(err, "failed to write workbook")
	}
	s.logger.Info("Workbook exported",
		zap.String("workspaceID", workspaceID),
		zap.Int("rows", len(table.Rows)),
	)
	return nil
}

// Get returns the external view of one workspace.
func (s *WorkspaceService) Get(workspaceID string) (WorkspaceInfo, error) {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return WorkspaceInfo{}, err
	}
	return s.info(ws), nil
}

// List returns every live workspace, ordered by id.
func (s *WorkspaceService) List() []WorkspaceInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WorkspaceInfo, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		out = append(out, s.info(ws))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Detail returns the navigation view of one node. When moveFocus is set the
// workspace focus follows, which is how browsing works: viewing a node is
// selecting it, as in the session state of the legacy UI.
func (s *WorkspaceService) Detail(workspaceID, nodeID string, moveFocus bool) (NodeDetail, error) {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return NodeDetail{}, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	n, ok := ws.store.Get(nodeID)
	if !ok {
		return NodeDetail{}, apperrors.NewNodeNotFoundError(nodeID)
	}

	sibIDs, err := ws.store.Siblings(nodeID)
	if err != nil {
		return NodeDetail{}, err
	}

	if moveFocus {
		ws.focus = nodeID
	}

	return NodeDetail{
		Node:     *n,
		Parents:  s.summaries(ws.store, n.Parents),
		Children: s.summaries(ws.store, n.Children),
		Siblings: s.summaries(ws.store, sibIDs),
	}, nil
}

// AddNode adds a single node relative to an anchor. The new node's kind is
// inferred from the anchor (one level down for a child, same level for a
// sibling) unless an explicit kind is given; its id comes from the store's
// identifier generator.
func (s *WorkspaceService) AddNode(workspaceID string, in AddNodeInput) (NodeSummary, error) {
	if strings.TrimSpace(in.Name) == "" {
		return NodeSummary{}, apperrors.NewValidationError("node name is required")
	}

	ws, err := s.resolve(workspaceID)
	if err != nil {
		return NodeSummary{}, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	anchorID := in.AnchorID
	if anchorID == "" {
		anchorID = ws.focus
	}
	anchor, ok := ws.store.Get(anchorID)
	if !ok {
		return NodeSummary{}, apperrors.NewNodeNotFoundError(anchorID)
	}

	var parentID string
	var kind hierarchy.Kind
	switch in.Relation {
	case "", "child":
		parentID = anchor.ID
		kind = anchor.Kind.ChildKind()
	case "sibling":
		kind = anchor.Kind
		if len(anchor.Parents) > 0 {
			parentID = anchor.Parents[0]
		}
	case "parent":
		// The new node goes above the anchor, which gains it as an
		// additional parent.
		kind = anchor.Kind.ParentKind()
	default:
		return NodeSummary{}, apperrors.NewValidationError("relation must be child, sibling or parent")
	}
	if in.Kind != "" {
		kind = hierarchy.ParseKind(in.Kind)
	}

	id := ws.store.NextID()
	if err := ws.store.Add(id, strings.TrimSpace(in.Name), kind, in.Definition, parentID); err != nil {
		return NodeSummary{}, err
	}
	if in.Relation == "parent" {
		if err := ws.store.Link(id, anchor.ID); err != nil {
			return NodeSummary{}, err
		}
	}

	s.logger.Info("Node added",
		zap.String("workspaceID", workspaceID),
		zap.String("nodeID", id),
		zap.String("kind", string(kind)),
		zap.String("parentID", parentID),
	)
	return NodeSummary{ID: id, Name: strings.TrimSpace(in.Name), Kind: kind}, nil
}

// AddEntries adds one entry child under the anchor per non-blank line. Each
// line's text before the first ":" becomes the display name and the whole
// line is stored as the definition, so "term: gloss" lines keep their gloss.
// Returns the number of entries added.
func (s *WorkspaceService) AddEntries(workspaceID, anchorID string, lines []string) (int, error) {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return 0, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if anchorID == "" {
		anchorID = ws.focus
	}
	if _, ok := ws.store.Get(anchorID); !ok {
		return 0, apperrors.NewNodeNotFoundError(anchorID)
	}

	added := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name := strings.SplitN(line, ":", 2)[0]
		id := ws.store.NextID()
		if err := ws.store.Add(id, name, hierarchy.KindEntry, line, anchorID); err != nil {
			return added, err
		}
		added++
	}

	s.logger.Info("Entries added",
		zap.String("workspaceID", workspaceID),
		zap.String("anchorID", anchorID),
		zap.Int("count", added),
	)
	return added, nil
}

// EditNode renames a node and, for entries, replaces its definition.
func (s *WorkspaceService) EditNode(workspaceID, nodeID, name, definition string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("node name is required")
	}

	ws, err := s.resolve(workspaceID)
	if err != nil {
		return err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return ws.store.Edit(nodeID, strings.TrimSpace(name), definition)
}

// DeleteNode deletes a leaf node and returns the new focus: the deleted
// node's former first parent, or "" when a root was removed. The workspace
// focus follows when the deleted node was focused.
func (s *WorkspaceService) DeleteNode(workspaceID, nodeID string) (string, error) {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return "", err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	focus, err := ws.store.Delete(nodeID)
	if err != nil {
		return "", err
	}
	if ws.focus == nodeID {
		ws.focus = focus
	}

	s.logger.Info("Node deleted",
		zap.String("workspaceID", workspaceID),
		zap.String("nodeID", nodeID),
		zap.String("newFocus", focus),
	)
	return focus, nil
}

// Siblings returns summaries of the node's siblings.
func (s *WorkspaceService) Siblings(workspaceID, nodeID string) ([]NodeSummary, error) {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ids, err := ws.store.Siblings(nodeID)
	if err != nil {
		return nil, err
	}
	return s.summaries(ws.store, ids), nil
}

// Tree renders the whole store as an outline, one subtree per root in
// insertion order. A node with several parents appears under each of them;
// the walk carries a per-path visited set so cycles in imported data cut off
// instead of looping.
func (s *WorkspaceService) Tree(workspaceID string) ([]*TreeNode, error) {
	ws, err := s.resolve(workspaceID)
	if err != nil {
		return nil, err
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	var roots []*TreeNode
	for _, id := range ws.store.IDs() {
		n, _ := ws.store.Get(id)
		if n.IsRoot() {
			roots = append(roots, s.subtree(ws.store, id, map[string]bool{}))
		}
	}
	return roots, nil
}

func (s *WorkspaceService) subtree(store *hierarchy.Store, id string, onPath map[string]bool) *TreeNode {
	n, ok := store.Get(id)
	if !ok {
		return nil
	}
	t := &TreeNode{ID: n.ID, Name: n.Name, Kind: n.Kind}

	onPath[id] = true
	for _, cid := range n.Children {
		if onPath[cid] {
			continue
		}
		if child := s.subtree(store, cid, onPath); child != nil {
			t.Children = append(t.Children, child)
		}
	}
	delete(onPath, id)
	return t
}

func (s *WorkspaceService) resolve(workspaceID string) (*Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws, ok := s.workspaces[workspaceID]
	if !ok {
		return nil, apperrors.NewNotFoundError("workspace")
	}
	return ws, nil
}

func (s *WorkspaceService) info(ws *Workspace) WorkspaceInfo {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return WorkspaceInfo{
		ID:        ws.id,
		Name:      ws.name,
		Focus:     ws.focus,
		NodeCount: ws.store.Len(),
	}
}

// summaries resolves ids against the store, skipping any that dangle.
func (s *WorkspaceService) summaries(store *hierarchy.Store, ids []string) []NodeSummary {
	out := make([]NodeSummary, 0, len(ids))
	for _, id := range ids {
		n, ok := store.Get(id)
		if !ok {
			continue
		}
		out = append(out, NodeSummary{ID: n.ID, Name: n.Name, Kind: n.Kind})
	}
	return out
}
