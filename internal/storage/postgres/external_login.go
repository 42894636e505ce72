package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/storage"
)

// SaveExternalLogin сохраняет связь (provider, provider_key) -> user.
func (s *Storage) SaveExternalLogin(ctx context.Context, login *models.ExternalLogin) error {
	const op = "storage.postgres.SaveExternalLogin"

	query := `
        INSERT INTO external_logins(provider, provider_key, user_id, created_at)
        VALUES ($1, $2, $3, $4)
    `

	_, err := s.db.Exec(ctx, query,
		login.Provider,
		login.ProviderKey,
		login.UserID,
		login.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ExternalLoginsByUserID возвращает все внешние связи пользователя.
func (s *Storage) ExternalLoginsByUserID(ctx context.Context, userID uuid.UUID) ([]models.ExternalLogin, error) {
	const op = "storage.postgres.ExternalLoginsByUserID"

	query := `
        SELECT provider, provider_key, user_id, created_at
        FROM external_logins
        WHERE user_id = $1
        ORDER BY created_at
    `

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var logins []models.ExternalLogin
	for rows.Next() {
		var l models.ExternalLogin
		if err := rows.Scan(&l.Provider, &l.ProviderKey, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logins = append(logins, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logins, nil
}
