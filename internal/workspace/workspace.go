package workspace

import "sync"

// Workspace is the entity store owned by one session. Reads return copies;
// writes run through Update so a failed mutation leaves no trace.
type Workspace struct {
	mu   sync.RWMutex
	data Snapshot
}

// New seeds a workspace from a catalog snapshot. The seed is cloned.
func New(seed Snapshot) *Workspace {
	return &Workspace{data: seed.Clone()}
}

// View returns a consistent copy of every collection.
func (w *Workspace) View() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.data.Clone()
}

// Update applies fn to a working copy and commits it only when fn succeeds.
func (w *Workspace) Update(fn func(tx *Snapshot) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	working := w.data.Clone()
	if err := fn(&working); err != nil {
		return err
	}
	w.data = working
	return nil
}

func (w *Workspace) Stores() []Store {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Store(nil), w.data.Stores...)
}

func (w *Workspace) StoreGroups() []StoreGroup {
	return w.View().StoreGroups
}

func (w *Workspace) Vendors() []Vendor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Vendor(nil), w.data.Vendors...)
}

func (w *Workspace) Deals() []Deal {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Deal(nil), w.data.Deals...)
}

func (w *Workspace) OptIns() []OptIn {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]OptIn(nil), w.data.OptIns...)
}

func (w *Workspace) Guests() []Guest {
	return w.View().Guests
}

func (w *Workspace) FindDeal(id DealID) (Deal, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.data.FindDeal(id)
}

func (w *Workspace) FindVendor(id VendorID) (Vendor, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.data.FindVendor(id)
}

func (w *Workspace) FindStore(id StoreID) (Store, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.data.FindStore(id)
}

func (w *Workspace) AddOptIns(batch ...OptIn) {
	_ = w.Update(func(tx *Snapshot) error {
		tx.AddOptIns(batch...)
		return nil
	})
}

func (w *Workspace) AddDeal(d Deal) error {
	return w.Update(func(tx *Snapshot) error { return tx.AddDeal(d) })
}

func (w *Workspace) UpdateDeal(d Deal) error {
	return w.Update(func(tx *Snapshot) error { return tx.UpdateDeal(d) })
}

func (w *Workspace) AddStoreGroup(g StoreGroup) error {
	return w.Update(func(tx *Snapshot) error { return tx.AddStoreGroup(g) })
}

func (w *Workspace) UpdateStoreGroup(id GroupID, g StoreGroup) error {
	return w.Update(func(tx *Snapshot) error { return tx.UpdateStoreGroup(id, g) })
}

func (w *Workspace) DeleteStoreGroup(id GroupID) error {
	return w.Update(func(tx *Snapshot) error { return tx.DeleteStoreGroup(id) })
}

func (w *Workspace) AddGuest(g Guest) error {
	return w.Update(func(tx *Snapshot) error { return tx.AddGuest(g) })
}
