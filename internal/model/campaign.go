// internal/model/campaign.go
package model

import "time"

// Channel values.
const (
    ChannelEmail    = "EMAIL"
    ChannelWhatsApp = "WA"
)

// Recipient modes.
const (
    ModeAll      = "ALL"
    ModeGroups   = "GROUPS"
    ModeSelected = "SELECTED"
)

// Campaign statuses. A campaign moves draft -> queued -> done.
const (
    StatusDraft  = "draft"
    StatusQueued = "queued"
    StatusDone   = "done"
)

// Campaign is a single outbound messaging job. Email and WhatsApp campaigns
// share one table and differ only in the channel payload fields.
type Campaign struct {
    ID            int        `db:"id" json:"id"`
    OwnerID       *int       `db:"owner_id" json:"owner_id,omitempty"`
    Name          string     `db:"name" json:"name"`
    Channel       string     `db:"channel" json:"channel"`
    RecipientMode string     `db:"recipient_mode" json:"recipient_mode"`
    Subject       string     `db:"subject" json:"subject,omitempty"`
    BodyHTML      string     `db:"body_html" json:"body_html,omitempty"`
    FromEmail     string     `db:"from_email" json:"from_email,omitempty"`
    MessageText   string     `db:"message_text" json:"message_text,omitempty"`
    ScheduledAt   *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
    SentAt        *time.Time `db:"sent_at" json:"sent_at,omitempty"`
    Status        string     `db:"status" json:"status"`
    CreatedAt     time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt     *time.Time `db:"updated_at" json:"updated_at,omitempty"`

    // Association tables, loaded alongside the row. GroupIDs is authoritative
    // only when RecipientMode is GROUPS, SelectedClientIDs only when SELECTED.
    GroupIDs          []int `json:"group_ids"`
    SelectedClientIDs []int `json:"selected_client_ids"`
}

func ValidChannel(ch string) bool {
    return ch == ChannelEmail || ch == ChannelWhatsApp
}

func ValidRecipientMode(mode string) bool {
    return mode == ModeAll || mode == ModeGroups || mode == ModeSelected
}
