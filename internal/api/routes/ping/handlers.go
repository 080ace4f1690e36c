// Package ping contains handlers for the ping endpoint.
package ping

import "net/http"

// HandlePing godoc
//
//	@Summary	Health check.
//	@Tags		Ping
//	@Produce	plain
//	@Success	200	{string}	string	"pong"
//	@Router		/api/ping [GET]
func HandlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("pong"))
}
