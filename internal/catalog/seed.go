package catalog

import (
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
)

const (
	imageCola    = "https://images.pexels.com/photos/50593/coca-cola-cold-drink-soft-drink-coke-50593.jpeg?auto=compress&cs=tinysrgb&w=400"
	imageChips   = "https://images.pexels.com/photos/1633525/pexels-photo-1633525.jpeg?auto=compress&cs=tinysrgb&w=400"
	imageCereal  = "https://images.pexels.com/photos/5945771/pexels-photo-5945771.jpeg?auto=compress&cs=tinysrgb&w=400"
	imageLaundry = "https://images.pexels.com/photos/5591663/pexels-photo-5591663.jpeg?auto=compress&cs=tinysrgb&w=400"
)

// Builtin returns the trade-show catalog every new session starts from.
func Builtin() workspace.Snapshot {
	return workspace.Snapshot{
		Stores: []workspace.Store{
			{ID: "HRA101", Name: "Downtown Market", OwnerID: "HRA301", ParentStoreID: "HRA101"},
			{ID: "HRA102", Name: "Riverside Grocery", OwnerID: "HRA301", ParentStoreID: "HRA101"},
			{ID: "HRA103", Name: "Hillside Store", OwnerID: "HRA302"},
			{ID: "HRA104", Name: "Metro Foods", OwnerID: "HRA303", ParentStoreID: "HRA104"},
			{ID: "HRA105", Name: "Corner Market", OwnerID: "HRA303", ParentStoreID: "HRA104"},
			{ID: "HRA106", Name: "Valley Supermarket", OwnerID: "HRA304"},
		},
		StoreGroups: []workspace.StoreGroup{
			{ID: "G001", ParentStoreID: "HRA101", ChildStoreIDs: []workspace.StoreID{"HRA102"}},
			{ID: "G002", ParentStoreID: "HRA104", ChildStoreIDs: []workspace.StoreID{"HRA105"}},
		},
		Vendors: []workspace.Vendor{
			{ID: "V001", Name: "PepsiCo Beverages", ContactInfo: "sales@pepsico.com"},
			{ID: "V002", Name: "Coca-Cola Company", ContactInfo: "partners@coca-cola.com"},
			{ID: "V003", Name: "General Mills", ContactInfo: "retail@generalmills.com"},
			{ID: "V004", Name: "P&G Consumer Products", ContactInfo: "business@pg.com"},
		},
		Deals: []workspace.Deal{
			{
				ID: "1", VendorID: "V001", Brand: "PepsiCo", ProductName: "Pepsi Cola 12-Pack",
				ImageURL: imageCola, ExpiryDate: "2025-03-15", MinQuantity: 10,
				RebateText: "$2.00 per case", VendorName: "PepsiCo Beverages",
			},
			{
				ID: "2", VendorID: "V002", Brand: "Coca-Cola", ProductName: "Coca-Cola Classic 24-Pack",
				ImageURL: imageCola, ExpiryDate: "2025-04-01", MinQuantity: 5,
				RebateText: "$1.50 per case", VendorName: "Coca-Cola Company",
			},
			{
				ID: "3", VendorID: "V001", Brand: "Frito-Lay", ProductName: "Lays Chips Variety Pack",
				ImageURL: imageChips, ExpiryDate: "2025-02-28", MinQuantity: 15,
				RebateText: "$3.00 per case", VendorName: "PepsiCo Beverages",
			},
			{
				ID: "4", VendorID: "V003", Brand: "General Mills", ProductName: "Cheerios Cereal 18oz",
				ImageURL: imageCereal, ExpiryDate: "2025-05-15", MinQuantity: 12,
				RebateText: "$1.25 per case", VendorName: "General Mills",
			},
			{
				ID: "5", VendorID: "V004", Brand: "Procter & Gamble", ProductName: "Tide Laundry Detergent",
				ImageURL: imageLaundry, ExpiryDate: "2025-06-30", MinQuantity: 8,
				RebateText: "$4.00 per case", VendorName: "P&G Consumer Products",
			},
		},
		OptIns: []workspace.OptIn{},
		Guests: []workspace.Guest{},
	}
}

// BuiltinTestUsers returns the identities offered as one-click logins.
func BuiltinTestUsers() []workspace.User {
	return []workspace.User{
		{
			ID:       "HRA301",
			Name:     "John Smith",
			Email:    "john.smith@example.com",
			Role:     enums.UserRoleMember,
			StoreIDs: []workspace.StoreID{"HRA101", "HRA102"},
			Address:  "123 Main St, Downtown City",
		},
		{
			ID:       "HRA305",
			Name:     "Sarah Johnson",
			Email:    "sarah.johnson@example.com",
			Role:     enums.UserRoleMember,
			StoreIDs: []workspace.StoreID{"HRA106"},
			Address:  "456 Oak Ave, Valley Town",
		},
		{
			ID:       "V001",
			Name:     "PepsiCo Beverages",
			Email:    "sales@pepsico.com",
			Role:     enums.UserRoleVendor,
			StoreIDs: []workspace.StoreID{},
			VendorID: "V001",
		},
		{
			ID:       "ADMIN001",
			Name:     "HRA Admin",
			Email:    "admin@hra.example.com",
			Role:     enums.UserRoleAdmin,
			StoreIDs: []workspace.StoreID{},
		},
	}
}
