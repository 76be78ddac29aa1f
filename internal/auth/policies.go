package auth

import (
	"fmt"

	"rental-movies/internal/logger"

	"github.com/casbin/casbin/v2"
)

// DefaultPolicies are the route permissions of each role. Users inherit the
// anonymous permissions and the administrator those of users.
var DefaultPolicies = [][]string{
	{"anonymous", "/", "GET"},
	{"anonymous", "/front", "GET"},
	{"anonymous", "/movies", "GET"},
	{"anonymous", "/movies/:id", "GET"},
	{"anonymous", "/genres", "GET"},
	{"anonymous", "/news", "GET"},
	{"anonymous", "/news/:slug", "GET"},
	{"anonymous", "/pages/:url", "GET"},
	{"anonymous", "/navbar", "GET"},
	{"anonymous", "/breadcrumb/*", "GET"},
	{"anonymous", "/robots.txt", "GET"},
	{"anonymous", "/sitemap.xml", "GET"},
	{"anonymous", "/uploads/*", "GET"},
	{"anonymous", "/auth/login", "POST"},
	{"anonymous", "/auth/status", "GET"},
	{"anonymous", "/auth/oidc/login", "GET"},
	{"anonymous", "/auth/oidc/callback", "GET"},
	{"anonymous", "/users", "POST"},

	{"user", "/auth/logout", "POST"},
	{"user", "/content", "GET"},
	{"user", "/content", "POST"},
	{"user", "/content/:id", "GET"},
	{"user", "/content/:id", "POST"},
	{"user", "/content/:id", "DELETE"},
	{"user", "/users/:id", "GET"},
	{"user", "/users/:id", "POST"},
	{"user", "/upload", "POST"},

	{"admin", "/content/status", "GET"},
	{"admin", "/content/reset", "POST"},
	{"admin", "/content/:id/erase", "POST"},
	{"admin", "/users", "GET"},
	{"admin", "/users/:id", "DELETE"},
}

// roleInheritance lists (role, inherited role) pairs.
var roleInheritance = [][2]string{
	{RoleUser.String(), RoleNone.String()},
	{RoleAdmin.String(), RoleUser.String()},
}

// SeedDefaultPolicies ensures that the default policies and role hierarchy
// exist. It only adds what is missing, so it is safe to run on every start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	for _, p := range DefaultPolicies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	for _, g := range roleInheritance {
		if has, _ := e.HasRoleForUser(g[0], g[1]); !has {
			if _, err := e.AddRoleForUser(g[0], g[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role '%s' -> '%s'", g[0], g[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
