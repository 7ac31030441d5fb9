// internal/handler/group_handler.go
package handler

import (
    "encoding/json"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    "github.com/blasthq/blast-backend/internal/model"
    "github.com/blasthq/blast-backend/internal/repository"
)

// GroupHandler holds the dependencies for group-related HTTP handlers
type GroupHandler struct {
    Repo repository.GroupRepositoryInterface
}

func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
    var payload struct {
        Name        string `json:"name"`
        Description string `json:"description"`
        MemberIDs   []int  `json:"member_ids"`
    }
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }
    if payload.Name == "" {
        http.Error(w, "name is required", http.StatusBadRequest)
        return
    }

    group := &model.Group{
        Name:        payload.Name,
        Description: payload.Description,
        MemberIDs:   payload.MemberIDs,
    }
    if err := h.Repo.Create(group); err != nil {
        http.Error(w, "failed to create group: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(group)
}

func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
    groups, err := h.Repo.ListAll()
    if err != nil {
        http.Error(w, "failed to fetch groups: "+err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{"data": groups})
}

// DeleteGroup removes the group only; its members remain.
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid group id", http.StatusBadRequest)
        return
    }

    if err := h.Repo.Delete(id); err != nil {
        http.Error(w, "failed to delete group: "+err.Error(), http.StatusInternalServerError)
        return
    }
    w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) SetMembers(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid group id", http.StatusBadRequest)
        return
    }

    var payload struct {
        MemberIDs []int `json:"member_ids"`
    }
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
        return
    }

    if err := h.Repo.SetMembers(id, payload.MemberIDs); err != nil {
        http.Error(w, "failed to update members: "+err.Error(), http.StatusInternalServerError)
        return
    }

    group, err := h.Repo.GetByID(id)
    if err != nil || group == nil {
        http.Error(w, "group not found", http.StatusNotFound)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(group)
}
