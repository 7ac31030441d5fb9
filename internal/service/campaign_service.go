// internal/service/campaign_service.go
package service

import (
    "fmt"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/blasthq/blast-backend/internal/model"
    "github.com/blasthq/blast-backend/internal/queue"
    "github.com/blasthq/blast-backend/internal/repository"
)

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    SendLogRepo  repository.SendLogRepositoryInterface
    Queue        queue.Publisher
    Log          zerolog.Logger
}

// CreateCampaignInput is the creation surface shared by both channels.
type CreateCampaignInput struct {
    OwnerID           *int
    Name              string
    Channel           string
    RecipientMode     string
    GroupIDs          []int
    SelectedClientIDs []int
    ScheduledAt       *string // RFC3339, advisory only

    // Email payload
    Subject   string
    BodyHTML  string
    FromEmail string

    // WhatsApp payload
    MessageText string
}

type CampaignDetails struct {
    *model.Campaign
    Stats map[string]int `json:"stats"`
}

func (s *CampaignService) CreateCampaign(in CreateCampaignInput) (*model.Campaign, error) {
    if strings.TrimSpace(in.Name) == "" {
        return nil, fmt.Errorf("campaign name is required")
    }
    if !model.ValidChannel(in.Channel) {
        return nil, fmt.Errorf("invalid channel: %q", in.Channel)
    }
    if !model.ValidRecipientMode(in.RecipientMode) {
        return nil, fmt.Errorf("invalid recipient mode: %q", in.RecipientMode)
    }
    switch in.Channel {
    case model.ChannelEmail:
        if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.BodyHTML) == "" {
            return nil, fmt.Errorf("email campaigns require subject and body_html")
        }
    case model.ChannelWhatsApp:
        if strings.TrimSpace(in.MessageText) == "" {
            return nil, fmt.Errorf("whatsapp campaigns require message_text")
        }
    }

    c := &model.Campaign{
        OwnerID:           in.OwnerID,
        Name:              in.Name,
        Channel:           in.Channel,
        RecipientMode:     in.RecipientMode,
        Subject:           in.Subject,
        BodyHTML:          in.BodyHTML,
        FromEmail:         in.FromEmail,
        MessageText:       in.MessageText,
        GroupIDs:          in.GroupIDs,
        SelectedClientIDs: in.SelectedClientIDs,
        Status:            model.StatusDraft,
    }

    if in.ScheduledAt != nil {
        t, err := time.Parse(time.RFC3339, *in.ScheduledAt)
        if err != nil {
            return nil, fmt.Errorf("invalid scheduled_at: %w", err)
        }
        c.ScheduledAt = &t
    }

    if err := s.CampaignRepo.Create(c); err != nil {
        return nil, err
    }
    return c, nil
}

// QueueDispatch flips the campaign to queued and publishes the dispatch job.
// The caller returns immediately; the worker performs the send loop.
// Publishing twice dispatches twice.
func (s *CampaignService) QueueDispatch(campaignID int) (*model.Campaign, error) {
    campaign, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    if err := s.CampaignRepo.UpdateStatus(campaign.ID, model.StatusQueued); err != nil {
        return nil, err
    }
    campaign.Status = model.StatusQueued

    if err := s.Queue.Publish(queue.DispatchJob{CampaignID: campaign.ID, Channel: campaign.Channel}); err != nil {
        return nil, fmt.Errorf("enqueue dispatch: %w", err)
    }

    s.Log.Info().Int("campaign_id", campaign.ID).Str("channel", campaign.Channel).Msg("campaign queued")
    return campaign, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, channel, status string) ([]model.Campaign, map[string]int, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 20
    }
    if pageSize > 100 {
        pageSize = 100
    }
    offset := (page - 1) * pageSize

    ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, channel, status)
    if err != nil {
        return nil, nil, err
    }

    campaigns := make([]model.Campaign, len(ptrs))
    for i, c := range ptrs {
        campaigns[i] = *c
    }

    totalPages := (total + pageSize - 1) / pageSize
    pagination := map[string]int{
        "page":        page,
        "page_size":   pageSize,
        "total_count": total,
        "total_pages": totalPages,
    }

    return campaigns, pagination, nil
}

// GetCampaignDetails returns a campaign plus its send-log stats.
func (s *CampaignService) GetCampaignDetails(id int) (*CampaignDetails, error) {
    campaign, err := s.CampaignRepo.GetByID(id)
    if err != nil {
        return nil, err
    }

    stats, err := s.SendLogRepo.StatsByCampaignName(campaign.Name)
    if err != nil {
        return nil, err
    }

    return &CampaignDetails{Campaign: campaign, Stats: stats}, nil
}
