package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pathID parses the {id} path variable. A malformed id cannot match any row,
// so callers report it as not found.
func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requiredMessage returns message when any field failed the required rule.
func requiredMessage(details map[string]string, message string) string {
	for _, detail := range details {
		if strings.HasSuffix(detail, " is required") {
			return message
		}
	}
	return ""
}
