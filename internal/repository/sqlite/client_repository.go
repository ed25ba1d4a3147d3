package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

const createClientsTable = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	company_name TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
`

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createClientsTable); err != nil {
		return fmt.Errorf("create clients table: %w", err)
	}
	return nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (int64, error) {
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO clients (user_id, name, email, phone, address, type, company_name, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		client.UserID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.Type,
		client.CompanyName,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("client last insert id: %w", err)
	}
	client.ID = id
	return id, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	client.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE clients
SET name=?, email=?, phone=?, address=?, type=?, company_name=?, updated_at=?
WHERE id=? AND user_id=?`,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		client.Type,
		client.CompanyName,
		client.UpdatedAt,
		client.ID,
		client.UserID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return requireAffected(res)
}

func (r *ClientRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return requireAffected(res)
}

func (r *ClientRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, email, phone, address, type, company_name, created_at, updated_at
FROM clients
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.Address,
			&c.Type,
			&c.CompanyName,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

// requireAffected translates a zero-row write into ErrNotFound so callers
// cannot tell a missing row from one they do not own.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
