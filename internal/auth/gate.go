package auth

import "strings"

// LoginPath is where denied page requests get redirected.
const LoginPath = "/admin/login"

// Entry points that must stay reachable without a token.
var publicPaths = []string{"/admin/login", "/api/admin/auth/login"}

// Protected classifies a request path. A path is protected iff it falls
// under the admin surface (UI or API) and is not an allow-listed public
// entry point, matched exactly or with a single trailing slash.
func Protected(path string) bool {
	if !strings.HasPrefix(path, "/admin") && !strings.HasPrefix(path, "/api/admin") {
		return false
	}
	for _, p := range publicPaths {
		if path == p || path == p+"/" {
			return false
		}
	}
	return true
}
