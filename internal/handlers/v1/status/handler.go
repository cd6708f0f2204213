package status

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carson-networks/forecast-server/internal/logging"
)

// Response is the body written by GET /status.
type Response struct {
	Status       string `json:"status"`
	StoreBackend string `json:"storeBackend"`
}

type Handler struct {
	StoreBackend string
}

func NewHandler(storeBackend string) Handler {
	return Handler{StoreBackend: storeBackend}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	logData.AddData("storeBackend", h.StoreBackend)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Response{Status: "ok", StoreBackend: h.StoreBackend})
}
