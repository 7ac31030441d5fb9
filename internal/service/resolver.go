// internal/service/resolver.go
package service

import (
    appErrors "github.com/blasthq/blast-backend/internal/errors"
    "github.com/blasthq/blast-backend/internal/model"
)

// RecipientStore is the client-store dependency of the resolver.
// ListByGroupIDs must return a deduplicated union of the groups' members.
type RecipientStore interface {
    ListAll() ([]model.Client, error)
    ListByGroupIDs(groupIDs []int) ([]model.Client, error)
    ListByIDs(ids []int) ([]model.Client, error)
}

// Resolver maps a campaign's recipient mode to the concrete client set.
type Resolver struct {
    Clients RecipientStore
}

// Resolve returns the target clients for the campaign. The recipient mode
// decides which association is authoritative: GROUPS reads the campaign's
// groups, SELECTED its explicit client list, and the other association is
// ignored even if populated.
func (r *Resolver) Resolve(c *model.Campaign) ([]model.Client, error) {
    switch c.RecipientMode {
    case model.ModeAll:
        return r.Clients.ListAll()
    case model.ModeGroups:
        return r.Clients.ListByGroupIDs(c.GroupIDs)
    case model.ModeSelected:
        return r.Clients.ListByIDs(c.SelectedClientIDs)
    default:
        return nil, appErrors.NewUnknownRecipientMode(c.RecipientMode)
    }
}
