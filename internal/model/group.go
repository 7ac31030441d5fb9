// internal/model/group.go
package model

import "time"

type Group struct {
    ID          int        `db:"id" json:"id"`
    Name        string     `db:"name" json:"name"`
    Description string     `db:"description" json:"description"`
    MemberIDs   []int      `json:"member_ids"`
    CreatedAt   time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
