package workspace

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
)

// Snapshot is a plain copy of every collection a session works with. It is
// not safe for concurrent use; Workspace guards a Snapshot and hands out
// clones to readers.
type Snapshot struct {
	Stores      []Store
	StoreGroups []StoreGroup
	Vendors     []Vendor
	Deals       []Deal
	OptIns      []OptIn
	Guests      []Guest
}

// Clone deep-copies the snapshot so callers never share backing arrays.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Stores:      cloneSlice(s.Stores),
		StoreGroups: cloneSlice(s.StoreGroups),
		Vendors:     cloneSlice(s.Vendors),
		Deals:       cloneSlice(s.Deals),
		OptIns:      cloneSlice(s.OptIns),
		Guests:      cloneSlice(s.Guests),
	}
	for i := range out.StoreGroups {
		out.StoreGroups[i].ChildStoreIDs = cloneSlice(out.StoreGroups[i].ChildStoreIDs)
	}
	for i := range out.Guests {
		out.Guests[i].OptedInDealIDs = cloneSlice(out.Guests[i].OptedInDealIDs)
	}
	return out
}

// cloneSlice never returns nil so empty collections encode as [].
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func (s *Snapshot) FindStore(id StoreID) (Store, bool) {
	for _, st := range s.Stores {
		if st.ID == id {
			return st, true
		}
	}
	return Store{}, false
}

func (s *Snapshot) FindVendor(id VendorID) (Vendor, bool) {
	for _, v := range s.Vendors {
		if v.ID == id {
			return v, true
		}
	}
	return Vendor{}, false
}

func (s *Snapshot) FindDeal(id DealID) (Deal, bool) {
	for _, d := range s.Deals {
		if d.ID == id {
			return d, true
		}
	}
	return Deal{}, false
}

func (s *Snapshot) FindGroup(id GroupID) (StoreGroup, bool) {
	for _, g := range s.StoreGroups {
		if g.ID == id {
			return g, true
		}
	}
	return StoreGroup{}, false
}

func (s *Snapshot) FindGuest(id UserID) (Guest, bool) {
	for _, g := range s.Guests {
		if g.ID == id {
			return g, true
		}
	}
	return Guest{}, false
}

// StoreName resolves a store to its display name or Unknown.
func (s *Snapshot) StoreName(id StoreID) string {
	if st, ok := s.FindStore(id); ok {
		return st.Name
	}
	return Unknown
}

// AddOptIns appends the batch in order.
func (s *Snapshot) AddOptIns(batch ...OptIn) {
	s.OptIns = append(s.OptIns, batch...)
}

func (s *Snapshot) AddDeal(d Deal) error {
	if _, exists := s.FindDeal(d.ID); exists {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("deal %q already exists", d.ID))
	}
	s.Deals = append(s.Deals, d)
	return nil
}

// UpdateDeal replaces the deal with the same id.
func (s *Snapshot) UpdateDeal(d Deal) error {
	for i := range s.Deals {
		if s.Deals[i].ID == d.ID {
			s.Deals[i] = d
			return nil
		}
	}
	return pkgerrors.NotFound("deal", d.ID.String())
}

func (s *Snapshot) AddStoreGroup(g StoreGroup) error {
	if _, exists := s.FindGroup(g.ID); exists {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("store group %q already exists", g.ID))
	}
	s.StoreGroups = append(s.StoreGroups, g)
	return nil
}

// UpdateStoreGroup replaces the group stored under id, keeping its position.
func (s *Snapshot) UpdateStoreGroup(id GroupID, g StoreGroup) error {
	for i := range s.StoreGroups {
		if s.StoreGroups[i].ID == id {
			g.ID = id
			s.StoreGroups[i] = g
			return nil
		}
	}
	return pkgerrors.NotFound("store group", id.String())
}

func (s *Snapshot) DeleteStoreGroup(id GroupID) error {
	for i := range s.StoreGroups {
		if s.StoreGroups[i].ID == id {
			s.StoreGroups = append(s.StoreGroups[:i], s.StoreGroups[i+1:]...)
			return nil
		}
	}
	return pkgerrors.NotFound("store group", id.String())
}

func (s *Snapshot) AddGuest(g Guest) error {
	if _, exists := s.FindGuest(g.ID); exists {
		return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("guest %q already exists", g.ID))
	}
	if g.OptedInDealIDs == nil {
		g.OptedInDealIDs = []DealID{}
	}
	s.Guests = append(s.Guests, g)
	return nil
}

// RecordGuestDeal adds dealID to the guest's opted-in list once.
func (s *Snapshot) RecordGuestDeal(guestID UserID, dealID DealID) error {
	for i := range s.Guests {
		if s.Guests[i].ID != guestID {
			continue
		}
		for _, existing := range s.Guests[i].OptedInDealIDs {
			if existing == dealID {
				return nil
			}
		}
		s.Guests[i].OptedInDealIDs = append(s.Guests[i].OptedInDealIDs, dealID)
		return nil
	}
	return pkgerrors.NotFound("guest", guestID.String())
}
