package utils

import (
	"net/http"

	"tripdeck/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

// GetUsernameFromRequest returns the operator name set by the auth middleware.
func GetUsernameFromRequest(r *http.Request) string {
	name, _ := r.Context().Value(globals.UsernameKey).(string)
	return name
}
