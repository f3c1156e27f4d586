package optins

import (
	"strings"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
)

// ResolveStores picks the stores an opt-in applies to, in priority order:
//
//  1. a non-empty explicit selection, de-duplicated in the given order;
//  2. the user's primary store (storeIds[0]). Belonging to a group does not
//     widen the default; GroupSelection offers the whole group explicitly;
//  3. for users without stores, the store declared at login.
func ResolveStores(user workspace.User, explicit []workspace.StoreID) ([]workspace.StoreID, error) {
	if selected := dedupe(explicit); len(selected) > 0 {
		return selected, nil
	}

	if primary, ok := user.PrimaryStore(); ok {
		return []workspace.StoreID{primary}, nil
	}

	if user.DeclaredStoreID != "" {
		return []workspace.StoreID{user.DeclaredStoreID}, nil
	}

	return nil, pkgerrors.Invalid("no store to apply the opt-in to", map[string]string{"store_ids": "required"})
}

// IsOptedIn reports whether the user already holds an opt-in for the deal.
// Members and vendors match on their stores; guests match on their own id.
func IsOptedIn(snap *workspace.Snapshot, dealID workspace.DealID, user workspace.User) bool {
	for _, o := range snap.OptIns {
		if o.DealID != dealID {
			continue
		}
		if user.Role == enums.UserRoleGuest {
			if o.UserID == user.ID {
				return true
			}
			continue
		}
		if user.OwnsStore(o.StoreID) {
			return true
		}
	}
	return false
}

// isDuplicate reports whether storeID already committed to the deal. Guest
// opt-ins are personal, so another guest at the same store does not count.
func isDuplicate(snap *workspace.Snapshot, dealID workspace.DealID, storeID workspace.StoreID, user workspace.User) bool {
	guest := user.Role == enums.UserRoleGuest
	for _, o := range snap.OptIns {
		if o.DealID != dealID || o.StoreID != storeID {
			continue
		}
		if guest && o.UserID != user.ID {
			continue
		}
		return true
	}
	return false
}

func dedupe(ids []workspace.StoreID) []workspace.StoreID {
	out := make([]workspace.StoreID, 0, len(ids))
	seen := make(map[workspace.StoreID]struct{}, len(ids))
	for _, raw := range ids {
		id := workspace.StoreID(strings.TrimSpace(raw.String()))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
