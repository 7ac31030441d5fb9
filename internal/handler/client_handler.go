// internal/handler/client_handler.go
package handler

import (
    "encoding/csv"
    "encoding/json"
    "fmt"
    "net/http"
    "net/mail"
    "regexp"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/blasthq/blast-backend/internal/model"
    "github.com/blasthq/blast-backend/internal/repository"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-()\s]+$`)

// ClientHandler holds the dependencies for client-related HTTP handlers
type ClientHandler struct {
    Repo repository.ClientRepositoryInterface
}

type clientPayload struct {
    Name    string   `json:"name"`
    Email   *string  `json:"email"`
    Phone   *string  `json:"phone"`
    Company string   `json:"company"`
    City    string   `json:"city"`
    Tags    []string `json:"tags"`
}

func (p *clientPayload) validate() error {
    if p.Name == "" {
        return fmt.Errorf("name is required")
    }
    if p.Email != nil && *p.Email != "" {
        if _, err := mail.ParseAddress(*p.Email); err != nil {
            return fmt.Errorf("invalid email format")
        }
    }
    if p.Phone != nil && *p.Phone != "" && !phonePattern.MatchString(*p.Phone) {
        return fmt.Errorf("invalid phone number format")
    }
    return nil
}

func (p *clientPayload) toModel() *model.Client {
    tags := p.Tags
    if tags == nil {
        tags = []string{}
    }
    return &model.Client{
        Name:    p.Name,
        Email:   p.Email,
        Phone:   p.Phone,
        Company: p.Company,
        City:    p.City,
        Tags:    tags,
    }
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
    var payload clientPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }
    if err := payload.validate(); err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    client := payload.toModel()
    if err := h.Repo.Create(client); err != nil {
        http.Error(w, "failed to create client: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
    page := 1
    pageSize := 20
    if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
        page = p
    }
    if ps, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && ps > 0 {
        pageSize = ps
    }

    clients, total, err := h.Repo.List((page-1)*pageSize, pageSize)
    if err != nil {
        http.Error(w, "failed to fetch clients: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data": clients,
        "pagination": map[string]int{
            "page":        page,
            "page_size":   pageSize,
            "total_count": total,
        },
    })
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid client id", http.StatusBadRequest)
        return
    }

    client, err := h.Repo.GetByID(id)
    if err != nil {
        http.Error(w, "failed to fetch client: "+err.Error(), http.StatusInternalServerError)
        return
    }
    if client == nil {
        http.Error(w, "client not found", http.StatusNotFound)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid client id", http.StatusBadRequest)
        return
    }

    var payload clientPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }
    if err := payload.validate(); err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    client := payload.toModel()
    client.ID = id
    if err := h.Repo.Update(client); err != nil {
        http.Error(w, "failed to update client: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid client id", http.StatusBadRequest)
        return
    }

    if err := h.Repo.Delete(id); err != nil {
        http.Error(w, "failed to delete client: "+err.Error(), http.StatusInternalServerError)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

// DownloadTemplate serves a CSV skeleton for contact uploads.
func (h *ClientHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/csv")
    w.Header().Set("Content-Disposition", `attachment; filename="contacts_template.csv"`)

    cw := csv.NewWriter(w)
    cw.Write([]string{"name", "email", "phone"})
    cw.Write([]string{"Jane Doe", "jane@example.com", "+1234567890"})
    cw.Flush()
}
