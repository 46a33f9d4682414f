package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondWithError sends userMsg to the client and logs logMsg with the
// underlying error. An empty logMsg falls back to userMsg so the log
// always identifies the failing handler.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}

// writeJSON encodes v as the response body. Encode failures after the
// header is written can only be logged.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
