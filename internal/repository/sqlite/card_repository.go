package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finlite/internal/domain"
	"finlite/internal/repository"
)

const createCardsTable = `
CREATE TABLE IF NOT EXISTS cards (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	card_number TEXT NOT NULL,
	card_holder_name TEXT NOT NULL,
	expiration_date TEXT NOT NULL DEFAULT '',
	cvv TEXT NOT NULL DEFAULT '',
	balance REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(id)
);
`

type CardRepository struct {
	db *sql.DB
}

func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCardsTable); err != nil {
		return fmt.Errorf("create cards table: %w", err)
	}
	return nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) (int64, error) {
	now := time.Now().UTC()
	card.CreatedAt = now
	card.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cards (user_id, card_number, card_holder_name, expiration_date, cvv, balance, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		card.UserID,
		card.CardNumber,
		card.CardHolderName,
		card.ExpirationDate,
		card.CVV,
		card.Balance,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert card: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("card last insert id: %w", err)
	}
	card.ID = id
	return id, nil
}

func (r *CardRepository) UpdateBalance(ctx context.Context, id, userID int64, balance float64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE cards
SET balance=?, updated_at=?
WHERE id=? AND user_id=?`,
		balance,
		time.Now().UTC(),
		id,
		userID,
	)
	if err != nil {
		return fmt.Errorf("update card balance: %w", err)
	}
	return requireAffected(res)
}

func (r *CardRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return requireAffected(res)
}

func (r *CardRepository) Get(ctx context.Context, id, userID int64) (*domain.Card, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, card_number, card_holder_name, expiration_date, cvv, balance, created_at, updated_at
FROM cards
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)

	var c domain.Card
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.CardNumber,
		&c.CardHolderName,
		&c.ExpirationDate,
		&c.CVV,
		&c.Balance,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan card: %w", err)
	}
	return &c, nil
}

func (r *CardRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, card_number, card_holder_name, expiration_date, cvv, balance, created_at, updated_at
FROM cards
WHERE user_id = ?
ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var c domain.Card
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.CardNumber,
			&c.CardHolderName,
			&c.ExpirationDate,
			&c.CVV,
			&c.Balance,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}
	return cards, nil
}
