package rest

import (
	"net/http"
)

// clientConfigHandler - serves the browser client's settings. Values are public by nature.
func clientConfigHandler(clientConfig map[string]string) http.HandlerFunc {
	if clientConfig == nil {
		clientConfig = map[string]string{}
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, clientConfig)
	}
}
