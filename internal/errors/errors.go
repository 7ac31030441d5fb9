// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrMissingColumn aborts a contact import before any row is processed.
type ErrMissingColumn struct {
    Column string
}

func (e *ErrMissingColumn) Error() string {
    return fmt.Sprintf("missing required column: %s", e.Column)
}

func NewMissingColumn(column string) error {
    return &ErrMissingColumn{Column: column}
}

// ErrUnknownRecipientMode is returned when a campaign carries a recipient
// mode outside ALL/GROUPS/SELECTED. Resolution must fail loudly rather
// than target zero recipients.
type ErrUnknownRecipientMode struct {
    Mode string
}

func (e *ErrUnknownRecipientMode) Error() string {
    return fmt.Sprintf("unknown recipient mode: %q", e.Mode)
}

func NewUnknownRecipientMode(mode string) error {
    return &ErrUnknownRecipientMode{Mode: mode}
}
