package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"go.uber.org/multierr"
)

// Provider hands out the catalog every new session starts from.
type Provider struct {
	snapshot workspace.Snapshot
	users    []workspace.User
	source   string
}

// Loader is satisfied by Repository.
type Loader interface {
	Load(ctx context.Context) (workspace.Snapshot, []workspace.User, error)
}

// NewProvider resolves the catalog once. The database is only read when the
// configured source asks for it. Integrity problems are logged, not fatal.
func NewProvider(ctx context.Context, cfg config.CatalogConfig, loader Loader, logg *logger.Logger) (*Provider, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	p := &Provider{source: config.CatalogSourceBuiltin}
	if cfg.FromDatabase() {
		if loader == nil {
			return nil, fmt.Errorf("catalog loader required for source %q", cfg.Source)
		}
		snap, users, err := loader.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		p.snapshot, p.users, p.source = snap, users, config.CatalogSourceDatabase
	} else {
		p.snapshot, p.users = Builtin(), BuiltinTestUsers()
	}

	for _, err := range multierr.Errors(Validate(p.snapshot)) {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"source":  p.source,
			"problem": err.Error(),
		}), "catalog.invalid")
	}

	logg.Info(logg.WithFields(ctx, map[string]any{
		"source":  p.source,
		"stores":  len(p.snapshot.Stores),
		"vendors": len(p.snapshot.Vendors),
		"deals":   len(p.snapshot.Deals),
	}), "catalog.loaded")

	return p, nil
}

// NewStaticProvider wraps an in-memory catalog.
func NewStaticProvider(snap workspace.Snapshot, users []workspace.User) *Provider {
	return &Provider{snapshot: snap.Clone(), users: cloneUsers(users), source: config.CatalogSourceBuiltin}
}

// Snapshot returns a deep copy safe to seed a workspace with.
func (p *Provider) Snapshot() workspace.Snapshot {
	return p.snapshot.Clone()
}

// NewWorkspace seeds a fresh session workspace.
func (p *Provider) NewWorkspace() *workspace.Workspace {
	return workspace.New(p.snapshot)
}

func (p *Provider) TestUsers() []workspace.User {
	return cloneUsers(p.users)
}

// FindTestUser looks up a seed identity by id.
func (p *Provider) FindTestUser(id workspace.UserID) (workspace.User, bool) {
	for _, u := range p.users {
		if u.ID == id {
			return cloneUsers([]workspace.User{u})[0], true
		}
	}
	return workspace.User{}, false
}

func (p *Provider) Source() string {
	return p.source
}

func cloneUsers(users []workspace.User) []workspace.User {
	out := make([]workspace.User, len(users))
	for i, u := range users {
		u.StoreIDs = append([]workspace.StoreID{}, u.StoreIDs...)
		out[i] = u
	}
	return out
}
