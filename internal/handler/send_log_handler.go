// internal/handler/send_log_handler.go
package handler

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/blasthq/blast-backend/internal/repository"
)

// SendLogHandler exposes the read-only audit trail of delivery attempts.
type SendLogHandler struct {
    Repo repository.SendLogRepositoryInterface
}

// ListSendLogs filters by channel (EMAIL|WA) and success (true|false).
func (h *SendLogHandler) ListSendLogs(w http.ResponseWriter, r *http.Request) {
    page := 1
    pageSize := 50
    if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
        page = p
    }
    if ps, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && ps > 0 {
        pageSize = ps
    }

    channel := r.URL.Query().Get("channel")

    var success *bool
    if raw := r.URL.Query().Get("success"); raw != "" {
        v, err := strconv.ParseBool(raw)
        if err != nil {
            http.Error(w, "invalid success filter", http.StatusBadRequest)
            return
        }
        success = &v
    }

    logs, total, err := h.Repo.List((page-1)*pageSize, pageSize, channel, success)
    if err != nil {
        http.Error(w, "failed to fetch send logs: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data": logs,
        "pagination": map[string]int{
            "page":        page,
            "page_size":   pageSize,
            "total_count": total,
        },
    })
}
