package workspace

import "fmt"

// ChildKind identifies what kind of row a ChildRef points at.
type ChildKind string

const (
	ChildKindFolder   ChildKind = "folder"
	ChildKindDocument ChildKind = "document"
	ChildKindFile     ChildKind = "file"
)

// Valid reports whether the kind is one of the three known child kinds.
func (k ChildKind) Valid() bool {
	switch k {
	case ChildKindFolder, ChildKindDocument, ChildKindFile:
		return true
	}
	return false
}

// ChildRef is the denormalized entry a parent keeps for each direct child so
// the UI can render a subtree without fetching every child row. It is a cache:
// the child row remains authoritative for title and icon, and every mutation
// that changes them must rewrite the matching ChildRef in the same transaction.
type ChildRef struct {
	ID    string    `json:"id"`
	Type  ChildKind `json:"type"`
	Title string    `json:"title"`
	Icon  *string   `json:"icon,omitempty"`
}

// FindChild returns the index of the ChildRef with the given id, or -1.
func FindChild(children []ChildRef, id string) int {
	for i := range children {
		if children[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveChild returns children without the entry for id. The original slice is
// not modified.
func RemoveChild(children []ChildRef, id string) []ChildRef {
	out := make([]ChildRef, 0, len(children))
	for _, c := range children {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// ParentKind identifies the kind of container a node hangs off.
type ParentKind string

const (
	ParentKindWorkspace ParentKind = "workspace"
	ParentKindFolder    ParentKind = "folder"
)

// ParentRef is a tagged reference to a node's single parent. Folders,
// documents and files always have exactly one parent: either the owning
// user's workspace root or another folder. Modeling this as one value rather
// than two optional id fields makes "exactly one must be set" structural.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id"`
}

// WorkspaceParent returns a ParentRef pointing at a workspace root.
func WorkspaceParent(id string) ParentRef {
	return ParentRef{Kind: ParentKindWorkspace, ID: id}
}

// FolderParent returns a ParentRef pointing at a folder.
func FolderParent(id string) ParentRef {
	return ParentRef{Kind: ParentKindFolder, ID: id}
}

// IsZero reports whether the reference is unset.
func (p ParentRef) IsZero() bool {
	return p.Kind == "" && p.ID == ""
}

// IsFolder reports whether the parent is a folder.
func (p ParentRef) IsFolder() bool {
	return p.Kind == ParentKindFolder
}

// Validate checks that the reference names a known kind and a non-empty id.
func (p ParentRef) Validate() error {
	if p.IsZero() {
		return fmt.Errorf("parent reference is required")
	}
	if p.Kind != ParentKindWorkspace && p.Kind != ParentKindFolder {
		return fmt.Errorf("unknown parent kind %q", p.Kind)
	}
	if p.ID == "" {
		return fmt.Errorf("parent id is required")
	}
	return nil
}
