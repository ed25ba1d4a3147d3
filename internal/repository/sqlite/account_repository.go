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

const createAccountsTable = `
CREATE TABLE IF NOT EXISTS accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	client_id INTEGER NOT NULL,
	category_id INTEGER NOT NULL,
	card_id INTEGER NULL,
	amount REAL NOT NULL DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'unpaid',
	description TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	paid_at DATETIME NULL,
	FOREIGN KEY (user_id) REFERENCES users(id),
	FOREIGN KEY (category_id) REFERENCES categories(id)
);
`

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAccountsTable); err != nil {
		return fmt.Errorf("create accounts table: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (int64, error) {
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO accounts (user_id, client_id, category_id, card_id, amount, status, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.UserID,
		account.ClientID,
		account.CategoryID,
		nullInt64(account.CardID),
		account.Amount,
		string(account.Status),
		account.Description,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("account last insert id: %w", err)
	}
	account.ID = id
	return id, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	account.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE accounts
SET client_id=?, category_id=?, card_id=?, amount=?, status=?, description=?, updated_at=?
WHERE id=? AND user_id=?`,
		account.ClientID,
		account.CategoryID,
		nullInt64(account.CardID),
		account.Amount,
		string(account.Status),
		account.Description,
		account.UpdatedAt,
		account.ID,
		account.UserID,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return requireAffected(res)
}

func (r *AccountRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return requireAffected(res)
}

const selectAccount = `
SELECT a.id, a.user_id, a.client_id, a.category_id, a.card_id, a.amount, a.status,
       a.description, COALESCE(c.name, ''), a.created_at, a.updated_at, a.paid_at
FROM accounts a
LEFT JOIN categories c ON a.category_id = c.id
`

func (r *AccountRepository) Get(ctx context.Context, id, userID int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, selectAccount+`WHERE a.id = ? AND a.user_id = ?`, id, userID)
	account, err := scanAccount(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAccount+`WHERE a.user_id = ? ORDER BY a.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

// Pay performs the unpaid -> paid transition and the linked card balance
// adjustment as one transaction. Income categories add the amount to the
// card, expense categories subtract it.
func (r *AccountRepository) Pay(ctx context.Context, id, userID int64) (*domain.Account, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin pay tx: %w", err)
	}
	defer tx.Rollback()

	var (
		status string
		amount float64
		cardID sql.NullInt64
		kind   string
	)
	err = tx.QueryRowContext(ctx, `
SELECT a.status, a.amount, a.card_id, COALESCE(c.kind, '')
FROM accounts a
LEFT JOIN categories c ON a.category_id = c.id
WHERE a.id = ? AND a.user_id = ?`,
		id, userID,
	).Scan(&status, &amount, &cardID, &kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("check account status: %w", err)
	}

	if status == string(domain.AccountStatusPaid) {
		return nil, repository.ErrAlreadyPaid
	}

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
UPDATE accounts
SET status=?, paid_at=?, updated_at=?
WHERE id=? AND user_id=? AND status <> ?`,
		string(domain.AccountStatusPaid),
		now,
		now,
		id,
		userID,
		string(domain.AccountStatusPaid),
	)
	if err != nil {
		return nil, fmt.Errorf("mark account paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("pay rows affected: %w", err)
	}
	if affected == 0 {
		// lost a race with a concurrent pay
		return nil, repository.ErrAlreadyPaid
	}

	if cardID.Valid {
		delta := amount
		if domain.CategoryKind(kind) == domain.CategoryKindExpense {
			delta = -amount
		}
		res, err := tx.ExecContext(ctx, `
UPDATE cards
SET balance = balance + ?, updated_at = ?
WHERE id = ? AND user_id = ?`,
			delta,
			now,
			cardID.Int64,
			userID,
		)
		if err != nil {
			return nil, fmt.Errorf("apply card balance: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("card rows affected: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("linked card missing: %w", repository.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit pay tx: %w", err)
	}

	return r.Get(ctx, id, userID)
}

func scanAccount(scan func(dest ...any) error) (*domain.Account, error) {
	var (
		account domain.Account
		cardID  sql.NullInt64
		paidAt  sql.NullTime
	)
	if err := scan(
		&account.ID,
		&account.UserID,
		&account.ClientID,
		&account.CategoryID,
		&cardID,
		&account.Amount,
		&account.Status,
		&account.Description,
		&account.CategoryName,
		&account.CreatedAt,
		&account.UpdatedAt,
		&paidAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if cardID.Valid {
		v := cardID.Int64
		account.CardID = &v
	}
	if paidAt.Valid {
		v := paidAt.Time
		account.PaidAt = &v
	}
	return &account, nil
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
