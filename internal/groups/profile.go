package groups

import "github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"

// MemberStoreDTO is one of the signed-in user's stores with its group label.
type MemberStoreDTO struct {
	ID         workspace.StoreID `json:"id"`
	Name       string            `json:"name"`
	GroupLabel string            `json:"group_label"`
}

// Profile is the "who am I" view: the user, their stores and the group of
// their primary store.
type Profile struct {
	User         workspace.User   `json:"user"`
	Stores       []MemberStoreDTO `json:"stores"`
	PrimaryGroup *GroupDTO        `json:"primary_group,omitempty"`
}

// BuildProfile resolves the user's stores against the workspace. Guests see
// the store they declared at login.
func BuildProfile(ws *workspace.Workspace, user workspace.User) Profile {
	snap := ws.View()
	r := NewResolver(&snap)

	ids := user.StoreIDs
	if len(ids) == 0 && user.DeclaredStoreID != "" {
		ids = []workspace.StoreID{user.DeclaredStoreID}
	}

	out := Profile{User: user, Stores: make([]MemberStoreDTO, 0, len(ids))}
	for _, id := range ids {
		out.Stores = append(out.Stores, MemberStoreDTO{
			ID:         id,
			Name:       snap.StoreName(id),
			GroupLabel: r.GroupLabel(id),
		})
	}

	if primary, ok := user.PrimaryStore(); ok {
		if g, ok := r.FindGroupFor(primary); ok {
			dto := toDTO(r, &snap, g)
			out.PrimaryGroup = &dto
		}
	}
	return out
}
