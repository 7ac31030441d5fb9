// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/blasthq/blast-backend/internal/errors"
    "github.com/blasthq/blast-backend/internal/service"
)

type CampaignController struct {
    CampaignService *service.CampaignService
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        OwnerID           *int    `json:"owner_id"`
        Name              string  `json:"name"`
        Channel           string  `json:"channel"`
        RecipientMode     string  `json:"recipient_mode"`
        GroupIDs          []int   `json:"group_ids"`
        SelectedClientIDs []int   `json:"selected_client_ids"`
        ScheduledAt       *string `json:"scheduled_at"`
        Subject           string  `json:"subject"`
        BodyHTML          string  `json:"body_html"`
        FromEmail         string  `json:"from_email"`
        MessageText       string  `json:"message_text"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.CreateCampaign(service.CreateCampaignInput{
        OwnerID:           body.OwnerID,
        Name:              body.Name,
        Channel:           body.Channel,
        RecipientMode:     body.RecipientMode,
        GroupIDs:          body.GroupIDs,
        SelectedClientIDs: body.SelectedClientIDs,
        ScheduledAt:       body.ScheduledAt,
        Subject:           body.Subject,
        BodyHTML:          body.BodyHTML,
        FromEmail:         body.FromEmail,
        MessageText:       body.MessageText,
    })
    if err != nil {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    page, _ := strconv.Atoi(r.URL.Query().Get("page"))
    pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
    channel := r.URL.Query().Get("channel")
    status := r.URL.Query().Get("status")

    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }

    campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, channel, status)
    if err != nil {
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":       campaigns,
        "pagination": pagination,
    })
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    details, err := c.CampaignService.GetCampaignDetails(id)
    if err != nil {
        var notFound *appErrors.ErrCampaignNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(details)
}

// DispatchCampaign queues the campaign for sending and returns immediately.
func (c *CampaignController) DispatchCampaign(w http.ResponseWriter, r *http.Request) {
    id, err := strconv.Atoi(chi.URLParam(r, "id"))
    if err != nil {
        http.Error(w, "invalid campaign id", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.QueueDispatch(id)
    if err != nil {
        var notFound *appErrors.ErrCampaignNotFound
        if errors.As(err, &notFound) {
            http.Error(w, err.Error(), http.StatusNotFound)
            return
        }
        http.Error(w, err.Error(), http.StatusInternalServerError)
        return
    }

    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusAccepted)
    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": campaign.ID,
        "channel":     campaign.Channel,
        "status":      campaign.Status,
    })
}
