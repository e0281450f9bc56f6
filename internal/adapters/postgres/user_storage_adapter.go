package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password_hash, first_name, last_name, user_type,
	phone_number, profile_picture, is_verified, last_login, created_at, updated_at`

type UserStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewUserStorageAdapter(pool *pgxpool.Pool) (*UserStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &UserStorageAdapter{pool: pool}, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.UserType,
		&u.PhoneNumber, &u.ProfilePicture, &u.IsVerified, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *UserStorageAdapter) getBy(ctx context.Context, field string, value interface{}) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = $1", userColumns, field)
	user, err := scanUser(a.pool.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", field, err)
	}
	return user, nil
}

func (a *UserStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return a.getBy(ctx, "id", id)
}

func (a *UserStorageAdapter) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return a.getBy(ctx, "username", username)
}

func (a *UserStorageAdapter) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return a.getBy(ctx, "email", email)
}

func (a *UserStorageAdapter) Create(ctx context.Context, user *domain.User) error {
	err := a.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, user_type, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING is_verified, created_at, updated_at`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, user.UserType, user.PhoneNumber,
	).Scan(&user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (a *UserStorageAdapter) Update(ctx context.Context, user *domain.User) error {
	err := a.pool.QueryRow(ctx, `
		UPDATE users SET
			email = $2, first_name = $3, last_name = $4, phone_number = $5,
			profile_picture = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		user.ID, user.Email, user.FirstName, user.LastName, user.PhoneNumber, user.ProfilePicture,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func (a *UserStorageAdapter) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := a.pool.Exec(ctx, "UPDATE users SET last_login = $2 WHERE id = $1", id, at)
	if err != nil {
		return fmt.Errorf("failed to update last login for user %s: %w", id, err)
	}
	return nil
}

func (a *UserStorageAdapter) ListVerificationDocuments(ctx context.Context, userID uuid.UUID) ([]domain.VerificationDocument, error) {
	rows, err := a.pool.Query(ctx, `
		SELECT id, user_id, document_type, file_url, status, notes, created_at, updated_at
		FROM verification_documents
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query verification documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.VerificationDocument, 0)
	for rows.Next() {
		var doc domain.VerificationDocument
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.DocumentType, &doc.FileURL, &doc.Status, &doc.Notes, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan verification document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (a *UserStorageAdapter) CreateVerificationDocument(ctx context.Context, doc *domain.VerificationDocument) error {
	err := a.pool.QueryRow(ctx, `
		INSERT INTO verification_documents (id, user_id, document_type, file_url, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		doc.ID, doc.UserID, doc.DocumentType, doc.FileURL, doc.Status, doc.Notes,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert verification document: %w", err)
	}
	return nil
}
