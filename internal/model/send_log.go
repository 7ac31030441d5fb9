// internal/model/send_log.go
package model

import "time"

// SendLog is one immutable row per delivery attempt. The campaign name is
// denormalized so the audit trail survives campaign deletion; the client
// reference is a hard foreign key that cascades on client delete.
type SendLog struct {
    ID           int       `db:"id" json:"id"`
    Channel      string    `db:"channel" json:"channel"` // EMAIL or WA
    CampaignName string    `db:"campaign_name" json:"campaign_name"`
    ClientID     int       `db:"client_id" json:"client_id"`
    Success      bool      `db:"success" json:"success"`
    ResponseCode string    `db:"response_code" json:"response_code"`
    ResponseBody string    `db:"response_body" json:"response_body"`
    CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
