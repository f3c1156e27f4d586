package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/db"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/hra-tradeshow-backend/pkg/db/types"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists the catalog tables, in dependency order.
func Models() []any {
	return []any{&models.Store{}, &models.StoreGroup{}, &models.Vendor{}, &models.Deal{}, &models.User{}}
}

// Repository reads and writes the catalog tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Load reads the whole catalog. Rows come back in position order.
func (r *Repository) Load(ctx context.Context) (workspace.Snapshot, []workspace.User, error) {
	conn := r.db.WithContext(ctx)

	var (
		stores  []models.Store
		groups  []models.StoreGroup
		vendors []models.Vendor
		deals   []models.Deal
		users   []models.User
	)
	if err := conn.Order("position, id").Find(&stores).Error; err != nil {
		return workspace.Snapshot{}, nil, fmt.Errorf("load stores: %w", err)
	}
	if err := conn.Order("position, id").Find(&groups).Error; err != nil {
		return workspace.Snapshot{}, nil, fmt.Errorf("load store groups: %w", err)
	}
	if err := conn.Order("position, id").Find(&vendors).Error; err != nil {
		return workspace.Snapshot{}, nil, fmt.Errorf("load vendors: %w", err)
	}
	if err := conn.Order("position, id").Find(&deals).Error; err != nil {
		return workspace.Snapshot{}, nil, fmt.Errorf("load deals: %w", err)
	}
	if err := conn.Order("position, id").Find(&users).Error; err != nil {
		return workspace.Snapshot{}, nil, fmt.Errorf("load test users: %w", err)
	}

	snap := workspace.Snapshot{
		Stores:      make([]workspace.Store, 0, len(stores)),
		StoreGroups: make([]workspace.StoreGroup, 0, len(groups)),
		Vendors:     make([]workspace.Vendor, 0, len(vendors)),
		Deals:       make([]workspace.Deal, 0, len(deals)),
		OptIns:      []workspace.OptIn{},
		Guests:      []workspace.Guest{},
	}
	for _, s := range stores {
		store := workspace.Store{ID: workspace.StoreID(s.ID), Name: s.Name, OwnerID: workspace.UserID(s.OwnerID)}
		if s.ParentStoreID != nil {
			store.ParentStoreID = workspace.StoreID(*s.ParentStoreID)
		}
		snap.Stores = append(snap.Stores, store)
	}
	for _, g := range groups {
		snap.StoreGroups = append(snap.StoreGroups, workspace.StoreGroup{
			ID:            workspace.GroupID(g.ID),
			ParentStoreID: workspace.StoreID(g.ParentStoreID),
			ChildStoreIDs: workspace.StoreIDs(g.ChildStoreIDs),
		})
	}
	vendorNames := make(map[string]string, len(vendors))
	for _, v := range vendors {
		vendorNames[v.ID] = v.Name
		snap.Vendors = append(snap.Vendors, workspace.Vendor{
			ID:          workspace.VendorID(v.ID),
			Name:        v.Name,
			ContactInfo: v.ContactInfo,
		})
	}
	for _, d := range deals {
		name, ok := vendorNames[d.VendorID]
		if !ok {
			name = workspace.Unknown
		}
		snap.Deals = append(snap.Deals, workspace.Deal{
			ID:          workspace.DealID(d.ID),
			VendorID:    workspace.VendorID(d.VendorID),
			Brand:       d.Brand,
			ProductName: d.ProductName,
			ImageURL:    d.ImageURL,
			ExpiryDate:  d.ExpiryDate,
			MinQuantity: d.MinQuantity,
			RebateText:  d.RebateText,
			VendorName:  name,
		})
	}

	identities := make([]workspace.User, 0, len(users))
	for _, u := range users {
		role, err := enums.ParseUserRole(u.Role)
		if err != nil {
			return workspace.Snapshot{}, nil, fmt.Errorf("test user %s: %w", u.ID, err)
		}
		user := workspace.User{
			ID:       workspace.UserID(u.ID),
			Name:     u.Name,
			Email:    u.Email,
			Role:     role,
			StoreIDs: workspace.StoreIDs(u.StoreIDs),
			Address:  u.Address,
		}
		if u.VendorID != nil {
			user.VendorID = workspace.VendorID(*u.VendorID)
		}
		identities = append(identities, user)
	}

	return snap, identities, nil
}

// Save upserts a catalog. Session state (opt-ins, guests) is ignored.
func (r *Repository) Save(ctx context.Context, snap workspace.Snapshot, users []workspace.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, s := range snap.Stores {
			row := models.Store{ID: s.ID.String(), Name: s.Name, OwnerID: s.OwnerID.String(), Position: i}
			if s.ParentStoreID != "" {
				parent := s.ParentStoreID.String()
				row.ParentStoreID = &parent
			}
			if err := upsert(tx, &row); err != nil {
				return fmt.Errorf("save store %s: %w", s.ID, err)
			}
		}
		for i, g := range snap.StoreGroups {
			row := models.StoreGroup{
				ID:            g.ID.String(),
				ParentStoreID: g.ParentStoreID.String(),
				ChildStoreIDs: textArray(g.ChildStoreIDs),
				Position:      i,
			}
			if err := upsert(tx, &row); err != nil {
				return fmt.Errorf("save store group %s: %w", g.ID, err)
			}
		}
		for i, v := range snap.Vendors {
			row := models.Vendor{ID: v.ID.String(), Name: v.Name, ContactInfo: v.ContactInfo, Position: i}
			if err := upsert(tx, &row); err != nil {
				return fmt.Errorf("save vendor %s: %w", v.ID, err)
			}
		}
		for i, d := range snap.Deals {
			row := models.Deal{
				ID:          d.ID.String(),
				VendorID:    d.VendorID.String(),
				Brand:       d.Brand,
				ProductName: d.ProductName,
				ImageURL:    d.ImageURL,
				ExpiryDate:  d.ExpiryDate,
				MinQuantity: d.MinQuantity,
				RebateText:  d.RebateText,
				Position:    i,
			}
			if err := upsert(tx, &row); err != nil {
				return fmt.Errorf("save deal %s: %w", d.ID, err)
			}
		}
		for i, u := range users {
			row := models.User{
				ID:       u.ID.String(),
				Name:     u.Name,
				Email:    u.Email,
				Role:     u.Role.String(),
				StoreIDs: textArray(u.StoreIDs),
				Address:  u.Address,
				Position: i,
			}
			if u.VendorID != "" {
				vendorID := u.VendorID.String()
				row.VendorID = &vendorID
			}
			if err := upsert(tx, &row); err != nil {
				if db.IsUniqueViolation(err, "") {
					return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "test user email already in use").
						WithDetails(map[string]string{"user_id": u.ID.String(), "email": u.Email})
				}
				return fmt.Errorf("save test user %s: %w", u.ID, err)
			}
		}
		return nil
	})
}

// upsert starts a fresh statement per row; a chained *gorm.DB carries the
// previous model's statement into the next Create.
func upsert(tx *gorm.DB, row any) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}

// Empty reports whether no stores have been loaded yet.
func (r *Repository) Empty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func textArray(ids []workspace.StoreID) dbtypes.TextArray {
	out := make(dbtypes.TextArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
