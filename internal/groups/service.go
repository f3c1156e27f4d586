package groups

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/google/uuid"
)

// Service manages store groups inside a session workspace.
type Service interface {
	List(ctx context.Context, ws *workspace.Workspace) []GroupDTO
	Create(ctx context.Context, ws *workspace.Workspace, input Input) (*GroupDTO, error)
	Update(ctx context.Context, ws *workspace.Workspace, id workspace.GroupID, input Input) (*GroupDTO, error)
	Delete(ctx context.Context, ws *workspace.Workspace, id workspace.GroupID) error
	SearchStores(ctx context.Context, ws *workspace.Workspace, query string, exclude workspace.StoreID) []StoreDTO
}

type service struct {
	logg  *logger.Logger
	newID func() workspace.GroupID
}

func NewService(logg *logger.Logger) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		logg: logg,
		newID: func() workspace.GroupID {
			return workspace.GroupID("group-" + uuid.NewString())
		},
	}, nil
}

func (s *service) List(ctx context.Context, ws *workspace.Workspace) []GroupDTO {
	snap := ws.View()
	r := NewResolver(&snap)
	out := make([]GroupDTO, 0, len(snap.StoreGroups))
	for _, g := range snap.StoreGroups {
		out = append(out, toDTO(r, &snap, g))
	}
	return out
}

func (s *service) Create(ctx context.Context, ws *workspace.Workspace, input Input) (*GroupDTO, error) {
	var created GroupDTO
	err := ws.Update(func(tx *workspace.Snapshot) error {
		group, err := normalize(tx, "", input)
		if err != nil {
			return err
		}
		group.ID = s.newID()
		if err := tx.AddStoreGroup(group); err != nil {
			return err
		}
		created = toDTO(NewResolver(tx), tx, group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithFields(ctx, map[string]any{"group_id": created.ID, "parent_store_id": created.ParentStoreID})
	s.logg.Info(ctx, "store_group.created")
	return &created, nil
}

func (s *service) Update(ctx context.Context, ws *workspace.Workspace, id workspace.GroupID, input Input) (*GroupDTO, error) {
	var updated GroupDTO
	err := ws.Update(func(tx *workspace.Snapshot) error {
		if _, ok := tx.FindGroup(id); !ok {
			return pkgerrors.NotFound("store group", id.String())
		}
		group, err := normalize(tx, id, input)
		if err != nil {
			return err
		}
		if err := tx.UpdateStoreGroup(id, group); err != nil {
			return err
		}
		group.ID = id
		updated = toDTO(NewResolver(tx), tx, group)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(ctx, "group_id", id), "store_group.updated")
	return &updated, nil
}

func (s *service) Delete(ctx context.Context, ws *workspace.Workspace, id workspace.GroupID) error {
	if err := ws.DeleteStoreGroup(id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithField(ctx, "group_id", id), "store_group.deleted")
	return nil
}

// SearchStores matches id or name case-insensitively. An empty query lists every store.
func (s *service) SearchStores(ctx context.Context, ws *workspace.Workspace, query string, exclude workspace.StoreID) []StoreDTO {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := []StoreDTO{}
	for _, st := range ws.Stores() {
		if exclude != "" && st.ID == exclude {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(st.ID.String()), needle) &&
			!strings.Contains(strings.ToLower(st.Name), needle) {
			continue
		}
		out = append(out, StoreDTO{ID: st.ID, Name: st.Name})
	}
	return out
}

// normalize validates the form against the snapshot. self is the group being
// edited and is ignored by the one-group-per-store check.
func normalize(tx *workspace.Snapshot, self workspace.GroupID, input Input) (workspace.StoreGroup, error) {
	parent := workspace.StoreID(strings.TrimSpace(input.ParentStoreID.String()))
	if parent == "" {
		return workspace.StoreGroup{}, pkgerrors.Invalid("parent store is required", map[string]string{"parent_store_id": "required"})
	}
	if _, ok := tx.FindStore(parent); !ok {
		return workspace.StoreGroup{}, pkgerrors.Invalid("unknown parent store", map[string]string{"parent_store_id": "unknown store " + parent.String()})
	}

	children := make([]workspace.StoreID, 0, len(input.ChildStoreIDs))
	seen := map[workspace.StoreID]struct{}{parent: {}}
	for _, raw := range input.ChildStoreIDs {
		id := workspace.StoreID(strings.TrimSpace(raw.String()))
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		if _, ok := tx.FindStore(id); !ok {
			return workspace.StoreGroup{}, pkgerrors.Invalid("unknown child store", map[string]string{"child_store_ids": "unknown store " + id.String()})
		}
		seen[id] = struct{}{}
		children = append(children, id)
	}

	group := workspace.StoreGroup{ParentStoreID: parent, ChildStoreIDs: children}
	for _, other := range tx.StoreGroups {
		if other.ID == self {
			continue
		}
		for _, id := range GroupStoreIDs(group) {
			if other.Contains(id) {
				return workspace.StoreGroup{}, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("store %s already belongs to group %s", id, other.ID)).
					WithDetails(map[string]string{"store_id": id.String(), "group_id": other.ID.String()})
			}
		}
	}
	return group, nil
}
