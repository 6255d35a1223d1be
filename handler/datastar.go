package handler

import (
	"net/http"
	"strings"
)

const (
	// DataStarAcceptHeader marks a request that expects an SSE response.
	DataStarAcceptHeader = "text/event-stream"

	// DataStarQueryParam carries signals on GET requests.
	DataStarQueryParam = "datastar"
)

// IsDataStar reports whether r came from the DataStar client.
func IsDataStar(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}
