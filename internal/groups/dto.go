package groups

import "github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"

// Input is the admin form for creating or editing a group.
type Input struct {
	ParentStoreID workspace.StoreID
	ChildStoreIDs []workspace.StoreID
}

type StoreDTO struct {
	ID   workspace.StoreID `json:"id"`
	Name string            `json:"name"`
}

type GroupDTO struct {
	ID              workspace.GroupID   `json:"group_id"`
	ParentStoreID   workspace.StoreID   `json:"parent_store_id"`
	ParentStoreName string              `json:"parent_store_name"`
	ChildStoreIDs   []workspace.StoreID `json:"child_store_ids"`
	Stores          []StoreDTO          `json:"stores"`
}

func toDTO(r Resolver, snap *workspace.Snapshot, g workspace.StoreGroup) GroupDTO {
	stores := r.AllGroupStores(g)
	out := GroupDTO{
		ID:              g.ID,
		ParentStoreID:   g.ParentStoreID,
		ParentStoreName: snap.StoreName(g.ParentStoreID),
		ChildStoreIDs:   append([]workspace.StoreID{}, g.ChildStoreIDs...),
		Stores:          make([]StoreDTO, 0, len(stores)),
	}
	for _, st := range stores {
		out.Stores = append(out.Stores, StoreDTO{ID: st.ID, Name: st.Name})
	}
	return out
}
