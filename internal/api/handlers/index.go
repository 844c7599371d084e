package handlers

import (
	"io"
	"net/http"
)

const usage = "To use API visit http://[host]/bng/[easting]/[northing]"

// Index answers with a one-line usage hint.
func Index(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, usage)
}
