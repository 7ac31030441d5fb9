package repository

import (
    "database/sql"
    "fmt"
    "time"

    "github.com/lib/pq"

    appErrors "github.com/blasthq/blast-backend/internal/errors"
    "github.com/blasthq/blast-backend/internal/model"
)

type CampaignRepositoryInterface interface {
    Create(c *model.Campaign) error
    GetByID(id int) (*model.Campaign, error)
    ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error)
    UpdateStatus(campaignID int, status string) error

    // MarkDone sets sent_at and flips status to done in one update.
    MarkDone(campaignID int, sentAt time.Time) error
}

type CampaignRepository struct {
    DB *sql.DB
}

const campaignColumns = `id, owner_id, name, channel, recipient_mode, subject, body_html,
        from_email, message_text, scheduled_at, sent_at, status, created_at, updated_at`

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
    c.CreatedAt = time.Now()
    if c.Status == "" {
        c.Status = model.StatusDraft
    }

    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    query := `
        INSERT INTO campaigns (owner_id, name, channel, recipient_mode, subject, body_html,
            from_email, message_text, scheduled_at, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `
    err = tx.QueryRow(query, c.OwnerID, c.Name, c.Channel, c.RecipientMode, c.Subject,
        c.BodyHTML, c.FromEmail, c.MessageText, c.ScheduledAt, c.Status, c.CreatedAt).Scan(&c.ID)
    if err != nil {
        return err
    }

    if len(c.GroupIDs) > 0 {
        _, err = tx.Exec(`
            INSERT INTO campaign_groups (campaign_id, group_id)
            SELECT $1, id FROM groups WHERE id = ANY($2)
        `, c.ID, pq.Array(c.GroupIDs))
        if err != nil {
            return err
        }
    }
    if len(c.SelectedClientIDs) > 0 {
        _, err = tx.Exec(`
            INSERT INTO campaign_clients (campaign_id, client_id)
            SELECT $1, id FROM clients WHERE id = ANY($2)
        `, c.ID, pq.Array(c.SelectedClientIDs))
        if err != nil {
            return err
        }
    }

    return tx.Commit()
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
    query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
    var c model.Campaign
    err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Channel,
        &c.RecipientMode, &c.Subject, &c.BodyHTML, &c.FromEmail, &c.MessageText,
        &c.ScheduledAt, &c.SentAt, &c.Status, &c.CreatedAt, &c.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, appErrors.NewCampaignNotFound(id)
        }
        return nil, err
    }

    if c.GroupIDs, err = r.associationIDs(`SELECT group_id FROM campaign_groups WHERE campaign_id=$1 ORDER BY group_id`, id); err != nil {
        return nil, err
    }
    if c.SelectedClientIDs, err = r.associationIDs(`SELECT client_id FROM campaign_clients WHERE campaign_id=$1 ORDER BY client_id`, id); err != nil {
        return nil, err
    }
    return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, channel, status string) ([]*model.Campaign, int, error) {
    campaigns := []*model.Campaign{}
    query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if channel != "" {
        query += fmt.Sprintf(" AND channel=$%d", argPos)
        args = append(args, channel)
        argPos++
    }
    if status != "" {
        query += fmt.Sprintf(" AND status=$%d", argPos)
        args = append(args, status)
        argPos++
    }

    query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
    args = append(args, limit, offset)

    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    for rows.Next() {
        c := &model.Campaign{}
        if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Channel, &c.RecipientMode,
            &c.Subject, &c.BodyHTML, &c.FromEmail, &c.MessageText,
            &c.ScheduledAt, &c.SentAt, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
            return nil, 0, err
        }
        campaigns = append(campaigns, c)
    }

    // Count total
    countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
    argsCount := []interface{}{}
    argPosCount := 1
    if channel != "" {
        countQuery += fmt.Sprintf(" AND channel=$%d", argPosCount)
        argsCount = append(argsCount, channel)
        argPosCount++
    }
    if status != "" {
        countQuery += fmt.Sprintf(" AND status=$%d", argPosCount)
        argsCount = append(argsCount, status)
    }

    var total int
    if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
        return nil, 0, err
    }

    return campaigns, total, nil
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
    query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
    _, err := r.DB.Exec(query, status, time.Now(), campaignID)
    return err
}

func (r *CampaignRepository) MarkDone(campaignID int, sentAt time.Time) error {
    query := `UPDATE campaigns SET status=$1, sent_at=$2, updated_at=NOW() WHERE id=$3`
    _, err := r.DB.Exec(query, model.StatusDone, sentAt, campaignID)
    return err
}

func (r *CampaignRepository) associationIDs(query string, campaignID int) ([]int, error) {
    rows, err := r.DB.Query(query, campaignID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    ids := []int{}
    for rows.Next() {
        var id int
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
