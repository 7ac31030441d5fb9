// internal/model/client.go
package model

import "time"

type Client struct {
    ID        int        `db:"id" json:"id"`
    Name      string     `db:"name" json:"name"`
    Email     *string    `db:"email" json:"email,omitempty"`
    Phone     *string    `db:"phone" json:"phone,omitempty"`
    Company   string     `db:"company" json:"company"`
    City      string     `db:"city" json:"city"`
    Tags      []string   `db:"tags" json:"tags"`
    CreatedAt time.Time  `db:"created_at" json:"created_at"`
    UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// EmailAddress returns the email or "" when unset.
func (c *Client) EmailAddress() string {
    if c.Email == nil {
        return ""
    }
    return *c.Email
}

// PhoneNumber returns the phone or "" when unset.
func (c *Client) PhoneNumber() string {
    if c.Phone == nil {
        return ""
    }
    return *c.Phone
}
