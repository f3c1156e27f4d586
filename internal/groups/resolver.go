package groups

import "github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"

// IndividualLabel is the group label of a store outside any group.
const IndividualLabel = "Individual"

// Resolver answers group-membership questions against one snapshot.
type Resolver struct {
	snap *workspace.Snapshot
}

func NewResolver(snap *workspace.Snapshot) Resolver {
	return Resolver{snap: snap}
}

// FindGroupFor returns the group whose parent is storeID or whose children
// include it. If a store appears in several groups the first one wins.
func (r Resolver) FindGroupFor(storeID workspace.StoreID) (workspace.StoreGroup, bool) {
	if r.snap == nil {
		return workspace.StoreGroup{}, false
	}
	for _, g := range r.snap.StoreGroups {
		if g.Contains(storeID) {
			return g, true
		}
	}
	return workspace.StoreGroup{}, false
}

// AllGroupStores resolves the parent followed by the children. Ids with no
// matching store are skipped.
func (r Resolver) AllGroupStores(g workspace.StoreGroup) []workspace.Store {
	if r.snap == nil {
		return nil
	}
	out := make([]workspace.Store, 0, len(g.ChildStoreIDs)+1)
	for _, id := range GroupStoreIDs(g) {
		if st, ok := r.snap.FindStore(id); ok {
			out = append(out, st)
		}
	}
	return out
}

// GroupStoreIDs is {parent} ∪ children, parent first, without duplicates.
func GroupStoreIDs(g workspace.StoreGroup) []workspace.StoreID {
	out := make([]workspace.StoreID, 0, len(g.ChildStoreIDs)+1)
	seen := make(map[workspace.StoreID]struct{}, len(g.ChildStoreIDs)+1)
	add := func(id workspace.StoreID) {
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	add(g.ParentStoreID)
	for _, id := range g.ChildStoreIDs {
		add(id)
	}
	return out
}

// GroupLabel is the parent store id of the store's group, or IndividualLabel.
func (r Resolver) GroupLabel(storeID workspace.StoreID) string {
	if g, ok := r.FindGroupFor(storeID); ok {
		return g.ParentStoreID.String()
	}
	return IndividualLabel
}
