package enums

// DashboardView names the role-scoped view a client routes to after login.
type DashboardView string

const (
	DashboardViewMember DashboardView = "member"
	DashboardViewGuest  DashboardView = "guest"
	DashboardViewVendor DashboardView = "vendor"
	DashboardViewAdmin  DashboardView = "admin"
)

// DashboardFor maps a role onto its dashboard. Unknown roles land on the guest view.
func DashboardFor(role UserRole) DashboardView {
	switch role {
	case UserRoleMember:
		return DashboardViewMember
	case UserRoleVendor:
		return DashboardViewVendor
	case UserRoleAdmin:
		return DashboardViewAdmin
	default:
		return DashboardViewGuest
	}
}
