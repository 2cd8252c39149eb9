package guard

import "github.com/ghaggin/tourpal/internal/model"

// Bindings lists the dashboard views each role may open.
var Bindings = map[model.Role][]string{
	model.Traveler: {"/dashboard/user", "/dashboard/profile", "/dashboard/create-ad"},
	model.Provider: {"/dashboard/provider", "/dashboard/profile", "/dashboard/create-ad"},
	model.Admin:    {"/dashboard/admin", "/dashboard/profile"},
}

var roleOrder = []model.Role{model.Traveler, model.Provider, model.Admin}

// RolesFor returns the roles bound to path, in a stable order. Paths no
// role is bound to return nil and are open to any authenticated user.
func RolesFor(path string) []model.Role {
	var roles []model.Role
	for _, r := range roleOrder {
		if Allowed(r, path) {
			roles = append(roles, r)
		}
	}
	return roles
}

func Allowed(role model.Role, path string) bool {
	for _, p := range Bindings[role] {
		if p == path {
			return true
		}
	}
	return false
}

// DashboardPath is where a freshly logged in user lands.
func DashboardPath(role model.Role) string {
	switch role {
	case model.Admin:
		return "/dashboard/admin"
	case model.Provider:
		return "/dashboard/provider"
	}
	return "/dashboard/user"
}
