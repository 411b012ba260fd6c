package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dpetrovs/authgate/internal/common"
	"github.com/dpetrovs/authgate/internal/dbx"
	"github.com/dpetrovs/authgate/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account under a fresh ID. The unique constraint on
// (username, project_id) is the only duplicate gate; a violation maps to
// common.ErrDuplicateAccount.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (id, username, project_id, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	account.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		account.ID, account.Username, account.ProjectID, account.PasswordHash).Scan(&account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// Find returns the account for username within projectID.
// If not found, it returns common.ErrNotFound.
func (r *PostgresRepository) Find(ctx context.Context, username, projectID string) (*models.Account, error) {
	query := `
		SELECT id, username, project_id, password_hash, created_at
		FROM accounts
		WHERE username = $1 AND project_id = $2
	`

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, username, projectID).Scan(
		&account.ID, &account.Username, &account.ProjectID, &account.PasswordHash, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
