package transport

import (
	"net/http"
	"strconv"

	"purenest-be/internal/utils"
)

// requireUser extracts the authenticated user id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// requireAdmin extracts the user id and checks for the admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := requireUser(w, r)
	if !ok {
		return "", false
	}
	if utils.GetUserRoleFromContext(r.Context()) != "admin" {
		respondError(w, http.StatusForbidden, "admin access required")
		return "", false
	}
	return userID, true
}

func isAdmin(r *http.Request) bool {
	return utils.GetUserRoleFromContext(r.Context()) == "admin"
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
