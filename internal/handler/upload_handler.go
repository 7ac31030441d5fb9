// internal/handler/upload_handler.go
package handler

import (
    "encoding/json"
    "errors"
    "net/http"

    appErrors "github.com/blasthq/blast-backend/internal/errors"
    "github.com/blasthq/blast-backend/internal/service"
)

const maxUploadSize = 10 << 20 // 10 MB

// UploadHandler accepts multipart contact files and hands them to the importer.
type UploadHandler struct {
    Importer *service.Importer
}

// UploadContacts imports a CSV/XLSX upload and responds with a
// partial-success summary: imported count plus per-row errors.
func (h *UploadHandler) UploadContacts(w http.ResponseWriter, r *http.Request) {
    if err := r.ParseMultipartForm(maxUploadSize); err != nil {
        http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
        return
    }

    file, header, err := r.FormFile("file")
    if err != nil {
        http.Error(w, "no file provided", http.StatusBadRequest)
        return
    }
    defer file.Close()

    count, rowErrors, err := h.Importer.ImportFile(header.Filename, file)
    if err != nil {
        var missing *appErrors.ErrMissingColumn
        if errors.As(err, &missing) {
            http.Error(w, err.Error(), http.StatusBadRequest)
            return
        }
        http.Error(w, "import failed: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "imported": count,
        "errors":   rowErrors,
    })
}
