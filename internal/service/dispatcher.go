// internal/service/dispatcher.go
package service

import (
    "fmt"
    "strconv"
    "time"

    "github.com/rs/zerolog"

    "github.com/blasthq/blast-backend/internal/model"
)

// EmailSender delivers one HTML email. An empty from falls back to the
// transport's configured default.
type EmailSender interface {
    Send(from, to, subject, bodyHTML string) error
}

// WhatsAppSender delivers one text message. It never returns an error:
// provider failures come back as (false, code, detail).
type WhatsAppSender interface {
    Send(phone, text string) (ok bool, code int, body string)
}

// DispatchCampaignStore is the campaign-store dependency of the dispatcher.
type DispatchCampaignStore interface {
    GetByID(id int) (*model.Campaign, error)
    MarkDone(campaignID int, sentAt time.Time) error
}

// SendLogWriter appends one attempt row.
type SendLogWriter interface {
    Create(entry *model.SendLog) error
}

// Dispatcher runs the fire-once send loop for a campaign: resolve the
// recipients, attempt each one sequentially, log every attempt, then mark
// the campaign done.
type Dispatcher struct {
    Campaigns DispatchCampaignStore
    Resolver  *Resolver
    Logs      SendLogWriter
    Email     EmailSender
    WhatsApp  WhatsAppSender
    Log       zerolog.Logger
}

// Dispatch sends the campaign to every resolved recipient and returns the
// number of successful sends. Recipients missing the channel contact field
// are skipped silently. A single recipient's failure is logged and the loop
// continues; only resolution and store failures abort the whole pass.
//
// There is no guard against dispatching an already-done campaign: a second
// invocation re-sends to the full recipient set.
func (d *Dispatcher) Dispatch(campaignID int) (int, error) {
    campaign, err := d.Campaigns.GetByID(campaignID)
    if err != nil {
        return 0, err
    }
    if !model.ValidChannel(campaign.Channel) {
        return 0, fmt.Errorf("campaign %d has unsupported channel %q", campaign.ID, campaign.Channel)
    }

    recipients, err := d.Resolver.Resolve(campaign)
    if err != nil {
        return 0, err
    }

    d.Log.Info().
        Int("campaign_id", campaign.ID).
        Str("channel", campaign.Channel).
        Int("recipients", len(recipients)).
        Msg("dispatching campaign")

    sent := 0
    for _, client := range recipients {
        var entry *model.SendLog
        switch campaign.Channel {
        case model.ChannelEmail:
            entry = d.sendEmail(campaign, client)
        case model.ChannelWhatsApp:
            entry = d.sendWhatsApp(campaign, client)
        }
        if entry == nil {
            continue // recipient lacks the channel contact field
        }

        if entry.Success {
            sent++
        } else {
            d.Log.Warn().
                Int("campaign_id", campaign.ID).
                Int("client_id", client.ID).
                Str("response", entry.ResponseBody).
                Msg("send attempt failed")
        }
        if err := d.Logs.Create(entry); err != nil {
            d.Log.Error().Err(err).Int("client_id", client.ID).Msg("failed to write send log")
        }
    }

    if err := d.Campaigns.MarkDone(campaign.ID, time.Now()); err != nil {
        return sent, err
    }

    d.Log.Info().Int("campaign_id", campaign.ID).Int("sent", sent).Msg("campaign dispatched")
    return sent, nil
}

func (d *Dispatcher) sendEmail(c *model.Campaign, client model.Client) *model.SendLog {
    to := client.EmailAddress()
    if to == "" {
        return nil
    }
    entry := &model.SendLog{
        Channel:      model.ChannelEmail,
        CampaignName: c.Name,
        ClientID:     client.ID,
    }
    if err := d.Email.Send(c.FromEmail, to, c.Subject, c.BodyHTML); err != nil {
        entry.ResponseBody = err.Error()
        return entry
    }
    entry.Success = true
    return entry
}

func (d *Dispatcher) sendWhatsApp(c *model.Campaign, client model.Client) *model.SendLog {
    phone := client.PhoneNumber()
    if phone == "" {
        return nil
    }
    ok, code, body := d.WhatsApp.Send(phone, c.MessageText)
    return &model.SendLog{
        Channel:      model.ChannelWhatsApp,
        CampaignName: c.Name,
        ClientID:     client.ID,
        Success:      ok,
        ResponseCode: strconv.Itoa(code),
        ResponseBody: body,
    }
}
