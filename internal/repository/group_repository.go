package repository

import (
    "database/sql"

    "github.com/lib/pq"

    "github.com/blasthq/blast-backend/internal/model"
)

// GroupRepositoryInterface defines methods used by handlers
type GroupRepositoryInterface interface {
    Create(g *model.Group) error
    GetByID(id int) (*model.Group, error)
    ListAll() ([]model.Group, error)
    Delete(id int) error
    SetMembers(groupID int, clientIDs []int) error
}

type GroupRepository struct {
    DB *sql.DB
}

func (r *GroupRepository) Create(g *model.Group) error {
    query := `
        INSERT INTO groups (name, description, created_at)
        VALUES ($1, $2, NOW())
        RETURNING id, created_at
    `
    if err := r.DB.QueryRow(query, g.Name, g.Description).Scan(&g.ID, &g.CreatedAt); err != nil {
        return err
    }
    if len(g.MemberIDs) > 0 {
        return r.SetMembers(g.ID, g.MemberIDs)
    }
    return nil
}

func (r *GroupRepository) GetByID(id int) (*model.Group, error) {
    query := `SELECT id, name, description, created_at, updated_at FROM groups WHERE id=$1`
    var g model.Group
    err := r.DB.QueryRow(query, id).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, nil // not found
        }
        return nil, err
    }
    if err := r.loadMembers(&g); err != nil {
        return nil, err
    }
    return &g, nil
}

func (r *GroupRepository) ListAll() ([]model.Group, error) {
    rows, err := r.DB.Query(`SELECT id, name, description, created_at, updated_at FROM groups ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    groups := []model.Group{}
    for rows.Next() {
        var g model.Group
        if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
            return nil, err
        }
        groups = append(groups, g)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }

    for i := range groups {
        if err := r.loadMembers(&groups[i]); err != nil {
            return nil, err
        }
    }
    return groups, nil
}

// Delete removes the group and its membership rows. Members themselves are
// kept.
func (r *GroupRepository) Delete(id int) error {
    _, err := r.DB.Exec(`DELETE FROM groups WHERE id=$1`, id)
    return err
}

// SetMembers replaces the group's membership with the given client IDs.
func (r *GroupRepository) SetMembers(groupID int, clientIDs []int) error {
    tx, err := r.DB.Begin()
    if err != nil {
        return err
    }
    defer tx.Rollback()

    if _, err := tx.Exec(`DELETE FROM group_members WHERE group_id=$1`, groupID); err != nil {
        return err
    }
    if len(clientIDs) > 0 {
        _, err = tx.Exec(`
            INSERT INTO group_members (group_id, client_id)
            SELECT $1, id FROM clients WHERE id = ANY($2)
        `, groupID, pq.Array(clientIDs))
        if err != nil {
            return err
        }
    }
    return tx.Commit()
}

func (r *GroupRepository) loadMembers(g *model.Group) error {
    rows, err := r.DB.Query(`SELECT client_id FROM group_members WHERE group_id=$1 ORDER BY client_id`, g.ID)
    if err != nil {
        return err
    }
    defer rows.Close()

    g.MemberIDs = []int{}
    for rows.Next() {
        var id int
        if err := rows.Scan(&id); err != nil {
            return err
        }
        g.MemberIDs = append(g.MemberIDs, id)
    }
    return rows.Err()
}

var _ GroupRepositoryInterface = (*GroupRepository)(nil)
