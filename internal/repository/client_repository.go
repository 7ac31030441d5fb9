package repository

import (
    "database/sql"
    "fmt"
    "time"

    "github.com/lib/pq"

    "github.com/blasthq/blast-backend/internal/model"
)

// ClientRepositoryInterface defines methods used by services and handlers
type ClientRepositoryInterface interface {
    Create(c *model.Client) error
    GetByID(id int) (*model.Client, error)
    Update(c *model.Client) error
    Delete(id int) error
    List(offset, limit int) ([]model.Client, int, error)

    // Recipient resolution
    ListAll() ([]model.Client, error)
    ListByGroupIDs(groupIDs []int) ([]model.Client, error)
    ListByIDs(ids []int) ([]model.Client, error)

    // Import upsert keyed by the literal (email, phone) pair
    UpsertByEmailPhone(c *model.Client) (created bool, err error)
}

// ClientRepository is the concrete implementation
type ClientRepository struct {
    DB *sql.DB
}

const clientColumns = `id, name, email, phone, company, city, tags, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*model.Client, error) {
    var c model.Client
    if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.City,
        pq.Array(&c.Tags), &c.CreatedAt, &c.UpdatedAt); err != nil {
        return nil, err
    }
    if c.Tags == nil {
        c.Tags = []string{}
    }
    return &c, nil
}

func (r *ClientRepository) Create(c *model.Client) error {
    c.CreatedAt = time.Now()
    query := `
        INSERT INTO clients (name, email, phone, company, city, tags, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
    return r.DB.QueryRow(query, c.Name, c.Email, c.Phone, c.Company, c.City,
        pq.Array(c.Tags), c.CreatedAt).Scan(&c.ID)
}

func (r *ClientRepository) GetByID(id int) (*model.Client, error) {
    query := `SELECT ` + clientColumns + ` FROM clients WHERE id=$1`
    c, err := scanClient(r.DB.QueryRow(query, id))
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    return c, nil
}

func (r *ClientRepository) Update(c *model.Client) error {
    query := `
        UPDATE clients
        SET name=$1, email=$2, phone=$3, company=$4, city=$5, tags=$6, updated_at=NOW()
        WHERE id=$7
    `
    _, err := r.DB.Exec(query, c.Name, c.Email, c.Phone, c.Company, c.City,
        pq.Array(c.Tags), c.ID)
    return err
}

func (r *ClientRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM clients WHERE id=$1`, id)
    return err
}

// List returns a page of clients plus the total count.
func (r *ClientRepository) List(offset, limit int) ([]model.Client, int, error) {
    query := fmt.Sprintf(`SELECT %s FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`, clientColumns)
    clients, err := r.queryClients(query, limit, offset)
    if err != nil {
        return nil, 0, err
    }

    var total int
    if err := r.DB.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&total); err != nil {
        return nil, 0, err
    }
    return clients, total, nil
}

// ListAll fetches every client in the store (recipient_mode=ALL).
func (r *ClientRepository) ListAll() ([]model.Client, error) {
    return r.queryClients(`SELECT ` + clientColumns + ` FROM clients ORDER BY id`)
}

// ListByGroupIDs returns the deduplicated union of members across the given
// groups. A client in two of the groups appears once.
func (r *ClientRepository) ListByGroupIDs(groupIDs []int) ([]model.Client, error) {
    if len(groupIDs) == 0 {
        return []model.Client{}, nil
    }
    query := `
        SELECT DISTINCT c.id, c.name, c.email, c.phone, c.company, c.city, c.tags, c.created_at, c.updated_at
        FROM clients c
        JOIN group_members gm ON gm.client_id = c.id
        WHERE gm.group_id = ANY($1)
        ORDER BY c.id
    `
    return r.queryClients(query, pq.Array(groupIDs))
}

// ListByIDs returns exactly the clients with the given IDs (recipient_mode=SELECTED).
func (r *ClientRepository) ListByIDs(ids []int) ([]model.Client, error) {
    if len(ids) == 0 {
        return []model.Client{}, nil
    }
    query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ANY($1) ORDER BY id`
    return r.queryClients(query, pq.Array(ids))
}

// UpsertByEmailPhone matches on the literal (email, phone) pair, NULLs
// included, so two rows with no email and no phone still collide. A match
// overwrites name/company/city/tags; no match inserts.
func (r *ClientRepository) UpsertByEmailPhone(c *model.Client) (bool, error) {
    var existingID int
    err := r.DB.QueryRow(`
        SELECT id FROM clients
        WHERE email IS NOT DISTINCT FROM $1 AND phone IS NOT DISTINCT FROM $2
        LIMIT 1
    `, c.Email, c.Phone).Scan(&existingID)

    switch {
    case err == sql.ErrNoRows:
        return true, r.Create(c)
    case err != nil:
        return false, err
    }

    c.ID = existingID
    _, err = r.DB.Exec(`
        UPDATE clients SET name=$1, company=$2, city=$3, tags=$4, updated_at=NOW()
        WHERE id=$5
    `, c.Name, c.Company, c.City, pq.Array(c.Tags), existingID)
    return false, err
}

func (r *ClientRepository) queryClients(query string, args ...any) ([]model.Client, error) {
    rows, err := r.DB.Query(query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    clients := []model.Client{}
    for rows.Next() {
        c, err := scanClient(rows)
        if err != nil {
            return nil, err
        }
        clients = append(clients, *c)
    }
    return clients, rows.Err()
}

var _ ClientRepositoryInterface = (*ClientRepository)(nil)
