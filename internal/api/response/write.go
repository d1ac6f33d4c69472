package response

import (
	"encoding/json"
	"net/http"
)

// JSON encodes data as the response body with the given status. A nil data
// value sends the status line only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}
