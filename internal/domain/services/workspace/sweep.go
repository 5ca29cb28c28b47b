package workspace

import "context"

// SweepReport summarizes what a reconciliation pass repaired.
type SweepReport struct {
	DanglingRefsRemoved int `json:"dangling_refs_removed"`
	OrphansReattached   int `json:"orphans_reattached"`
}

// SweepService is the reconciliation pass for the ChildRef cache. Mutations
// are transactional, so this is a safety net for trees damaged before the
// transactional protocol existed (or by out-of-band writes): it drops
// ChildRefs pointing at missing rows and reattaches rows whose parent no
// longer exists to the owner's workspace root.
type SweepService interface {
	Reconcile(ctx context.Context, userID string) (*SweepReport, error)
}
