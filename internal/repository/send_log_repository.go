package repository

import (
    "database/sql"
    "fmt"
    "time"

    "github.com/blasthq/blast-backend/internal/model"
)

// SendLogRepositoryInterface defines methods used by the dispatcher and handlers.
// Rows are insert-only; there is no update path.
type SendLogRepositoryInterface interface {
    Create(entry *model.SendLog) error
    List(offset, limit int, channel string, success *bool) ([]model.SendLog, int, error)
    StatsByCampaignName(name string) (map[string]int, error)
}

type SendLogRepository struct {
    DB *sql.DB
}

func (r *SendLogRepository) Create(entry *model.SendLog) error {
    entry.CreatedAt = time.Now()
    query := `
        INSERT INTO send_logs (channel, campaign_name, client_id, success, response_code, response_body, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query, entry.Channel, entry.CampaignName, entry.ClientID,
        entry.Success, entry.ResponseCode, entry.ResponseBody, entry.CreatedAt).Scan(&entry.ID)
}

// List filters by channel and/or success flag, newest first.
func (r *SendLogRepository) List(offset, limit int, channel string, success *bool) ([]model.SendLog, int, error) {
    base := ` FROM send_logs WHERE 1=1`
    args := []interface{}{}
    argPos := 1

    if channel != "" {
        base += fmt.Sprintf(" AND channel=$%d", argPos)
        args = append(args, channel)
        argPos++
    }
    if success != nil {
        base += fmt.Sprintf(" AND success=$%d", argPos)
        args = append(args, *success)
        argPos++
    }

    query := `SELECT id, channel, campaign_name, client_id, success, response_code, response_body, created_at` +
        base + fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

    rows, err := r.DB.Query(query, append(args, limit, offset)...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    logs := []model.SendLog{}
    for rows.Next() {
        var l model.SendLog
        if err := rows.Scan(&l.ID, &l.Channel, &l.CampaignName, &l.ClientID,
            &l.Success, &l.ResponseCode, &l.ResponseBody, &l.CreatedAt); err != nil {
            return nil, 0, err
        }
        logs = append(logs, l)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }

    var total int
    if err := r.DB.QueryRow(`SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
        return nil, 0, err
    }
    return logs, total, nil
}

// StatsByCampaignName aggregates attempt outcomes for one campaign.
func (r *SendLogRepository) StatsByCampaignName(name string) (map[string]int, error) {
    query := `SELECT success, COUNT(*) FROM send_logs WHERE campaign_name=$1 GROUP BY success`
    rows, err := r.DB.Query(query, name)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    stats := map[string]int{"total": 0, "sent": 0, "failed": 0}
    for rows.Next() {
        var success bool
        var count int
        if err := rows.Scan(&success, &count); err != nil {
            return nil, err
        }
        if success {
            stats["sent"] = count
        } else {
            stats["failed"] = count
        }
        stats["total"] += count
    }
    return stats, rows.Err()
}

var _ SendLogRepositoryInterface = (*SendLogRepository)(nil)
