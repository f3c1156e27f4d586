package catalog

import (
	"fmt"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"go.uber.org/multierr"
)

// Validate reports every integrity problem in a catalog snapshot. The
// returned error is a multierr aggregate; use multierr.Errors to list them.
func Validate(snap workspace.Snapshot) error {
	var errs error

	stores := make(map[workspace.StoreID]struct{}, len(snap.Stores))
	for _, s := range snap.Stores {
		if _, dup := stores[s.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("store %s is listed twice", s.ID))
		}
		stores[s.ID] = struct{}{}
	}

	claimed := make(map[workspace.StoreID]workspace.GroupID)
	claim := func(g workspace.GroupID, id workspace.StoreID) {
		if _, ok := stores[id]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("group %s references unknown store %s", g, id))
		}
		if owner, ok := claimed[id]; ok && owner != g {
			errs = multierr.Append(errs, fmt.Errorf("store %s belongs to groups %s and %s", id, owner, g))
			return
		}
		claimed[id] = g
	}
	for _, g := range snap.StoreGroups {
		if g.ParentStoreID == "" {
			errs = multierr.Append(errs, fmt.Errorf("group %s has no parent store", g.ID))
		} else {
			claim(g.ID, g.ParentStoreID)
		}
		for _, child := range g.ChildStoreIDs {
			if child == g.ParentStoreID {
				errs = multierr.Append(errs, fmt.Errorf("group %s lists its parent %s as a child", g.ID, child))
				continue
			}
			claim(g.ID, child)
		}
	}

	vendors := make(map[workspace.VendorID]struct{}, len(snap.Vendors))
	for _, v := range snap.Vendors {
		vendors[v.ID] = struct{}{}
	}
	for _, d := range snap.Deals {
		if _, ok := vendors[d.VendorID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("deal %s references unknown vendor %s", d.ID, d.VendorID))
		}
		if d.MinQuantity < 1 {
			errs = multierr.Append(errs, fmt.Errorf("deal %s has min quantity %d", d.ID, d.MinQuantity))
		}
	}

	return errs
}
