package handlers

import (
	"net/http"
	"strconv"

	"hrms/middleware"
	"hrms/store"

	"go.uber.org/zap"
)

const defaultLogLimit = 100

type LogHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewLogHandler(st store.Store, logger *zap.Logger) *LogHandler {
	return &LogHandler{store: st, logger: logger}
}

// List returns the organisation's audit trail, newest first. Reading the
// trail is the one operation that is not itself logged.
func (h *LogHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	filter := store.LogFilter{
		Action: r.URL.Query().Get("action"),
		Limit:  queryInt(r, "limit", defaultLogLimit),
		Offset: queryInt(r, "offset", 0),
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultLogLimit
	}

	logs, total, err := h.store.ListLogs(r.Context(), claims.OrgID, filter)
	if err != nil {
		respondInternal(w, h.logger, "Failed to fetch logs", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
