package workspace

// Identifiers are opaque HRA-style strings (e.g. "HRA101", "V001", "G001").
// Each entity gets its own type so a store id can never be passed where a
// vendor id is expected.
type (
	StoreID  string
	VendorID string
	DealID   string
	UserID   string
	GroupID  string
)

func (id StoreID) String() string  { return string(id) }
func (id VendorID) String() string { return string(id) }
func (id DealID) String() string   { return string(id) }
func (id UserID) String() string   { return string(id) }
func (id GroupID) String() string  { return string(id) }

// StoreIDs converts raw identifiers, dropping blanks.
func StoreIDs(raw []string) []StoreID {
	out := make([]StoreID, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			continue
		}
		out = append(out, StoreID(v))
	}
	return out
}
