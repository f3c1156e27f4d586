package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgAuth "github.com/angelmondragon/hra-tradeshow-backend/pkg/auth"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/auth/session"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/google/uuid"
)

// Service signs people into isolated portal sessions.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
	TestUsers() []TestUserDTO
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type catalogProvider interface {
	NewWorkspace() *workspace.Workspace
	TestUsers() []workspace.User
	FindTestUser(id workspace.UserID) (workspace.User, bool)
}

type loginRecorder interface {
	IncLogin(role string)
	SetActiveSessions(n int)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Logger         *logger.Logger
	Catalog        catalogProvider
	Registry       *workspace.Registry
	SessionManager sessionManager
	Metrics        loginRecorder
	JWTConfig      config.JWTConfig
	LoginDelay     time.Duration
}

type service struct {
	logg     *logger.Logger
	catalog  catalogProvider
	registry *workspace.Registry
	session  sessionManager
	metrics  loginRecorder
	jwtCfg   config.JWTConfig
	delay    time.Duration
	now      func() time.Time
	newID    func(prefix string) workspace.UserID
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog provider is required")
	}
	if params.Registry == nil {
		return nil, fmt.Errorf("session registry is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		logg:     params.Logger,
		catalog:  params.Catalog,
		registry: params.Registry,
		session:  params.SessionManager,
		metrics:  params.Metrics,
		jwtCfg:   params.JWTConfig,
		delay:    params.LoginDelay,
		now:      time.Now,
		newID: func(prefix string) workspace.UserID {
			return workspace.UserID(prefix + "-" + uuid.NewString())
		},
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var (
		user  workspace.User
		guest *workspace.Guest
		err   error
	)
	ws := s.catalog.NewWorkspace()

	if id := strings.TrimSpace(req.TestUserID); id != "" {
		found, ok := s.catalog.FindTestUser(workspace.UserID(id))
		if !ok {
			return nil, pkgerrors.Invalid("unknown test user", map[string]string{"test_user_id": "select a listed test user"})
		}
		user = found
	} else {
		user, guest, err = s.declare(ws, req)
		if err != nil {
			return nil, err
		}
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if guest != nil {
		if err := ws.AddGuest(*guest); err != nil {
			return nil, err
		}
	}

	sess := s.registry.Create(user, ws)
	tokens, err := s.issue(ctx, user, sess.ID)
	if err != nil {
		s.registry.Delete(sess.ID)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncLogin(user.Role.String())
		s.metrics.SetActiveSessions(s.registry.Len())
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"user_id":    user.ID.String(),
		"role":       user.Role.String(),
		"session_id": sess.ID,
		"test_user":  req.TestUserID != "",
	})
	s.logg.Info(logCtx, "auth.login")

	return &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
		View:         enums.DashboardFor(user.Role),
	}, nil
}

// declare builds a user from the login form. Guests also get a guest record.
func (s *service) declare(ws *workspace.Workspace, req LoginRequest) (workspace.User, *workspace.Guest, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	address := strings.TrimSpace(req.Address)
	storeID := workspace.StoreID(strings.TrimSpace(req.StoreID))
	vendorID := workspace.VendorID(strings.TrimSpace(req.VendorID))

	fields := map[string]string{}
	if name == "" {
		fields["name"] = "name is required"
	}
	if email == "" {
		fields["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "email is invalid"
	}
	if address == "" {
		fields["address"] = "address is required"
	}
	role, err := enums.ParseUserRole(req.Role)
	if err != nil {
		fields["role"] = "role must be one of member, guest, vendor, admin"
	}
	if err == nil && role.RequiresStore() && storeID == "" {
		fields["store_id"] = "store id is required"
	}
	if err == nil && role == enums.UserRoleMember && storeID != "" {
		if _, ok := ws.FindStore(storeID); !ok {
			fields["store_id"] = "select a valid store"
		}
	}
	var vendor workspace.Vendor
	if err == nil && role == enums.UserRoleVendor {
		v, ok := ws.FindVendor(vendorID)
		if !ok {
			fields["vendor_id"] = "select a valid vendor"
		}
		vendor = v
	}
	if len(fields) > 0 {
		return workspace.User{}, nil, pkgerrors.Invalid("invalid login", fields)
	}

	user := workspace.User{
		Name:     name,
		Email:    email,
		Role:     role,
		StoreIDs: []workspace.StoreID{},
		Address:  address,
	}
	switch role {
	case enums.UserRoleMember:
		user.ID = s.newID("member")
		user.StoreIDs = []workspace.StoreID{storeID}
	case enums.UserRoleGuest:
		user.ID = s.newID("guest")
		user.DeclaredStoreID = storeID
		guest := &workspace.Guest{
			ID:             user.ID,
			Name:           name,
			Email:          email,
			Address:        address,
			OptedInDealIDs: []workspace.DealID{},
		}
		return user, guest, nil
	case enums.UserRoleVendor:
		user.ID = workspace.UserID(vendor.ID)
		user.VendorID = vendor.ID
	case enums.UserRoleAdmin:
		user.ID = s.newID("admin")
	}
	return user, nil, nil
}

func (s *service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *service) issue(ctx context.Context, user workspace.User, sessionID string) (*TokenPair, error) {
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:    user.ID.String(),
		SessionID: sessionID,
		Role:      user.Role,
		VendorID:  user.VendorID.String(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	refreshToken, err := s.session.Generate(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	oldID := claims.SessionID()
	if oldID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if _, ok := s.registry.Get(oldID); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}

	newID, newRefresh, err := s.session.Rotate(ctx, oldID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	sess, err := s.registry.Rekey(oldID, newID)
	if err != nil {
		_ = s.session.Revoke(ctx, newID)
		return nil, err
	}

	access, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:    sess.User.ID.String(),
		SessionID: sess.ID,
		Role:      sess.User.Role,
		VendorID:  sess.User.VendorID.String(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	id := claims.SessionID()
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	if err := s.session.Revoke(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	s.registry.Delete(id)
	if s.metrics != nil {
		s.metrics.SetActiveSessions(s.registry.Len())
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"user_id":    claims.UserID,
		"session_id": id,
	}), "auth.logout")
	return nil
}

func (s *service) TestUsers() []TestUserDTO {
	users := s.catalog.TestUsers()
	out := make([]TestUserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, TestUserDTO{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
			Label: testUserLabel(u),
		})
	}
	return out
}

func testUserLabel(u workspace.User) string {
	switch {
	case u.Role == enums.UserRoleMember && len(u.StoreIDs) > 1:
		return u.Name + " (Group Store Member)"
	case u.Role == enums.UserRoleMember:
		return u.Name + " (Single Store Member)"
	case u.Role == enums.UserRoleVendor:
		return u.Name + " (Vendor)"
	case u.Role == enums.UserRoleAdmin:
		return u.Name + " (Admin)"
	default:
		return u.Name
	}
}
