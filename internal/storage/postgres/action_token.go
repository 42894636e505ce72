package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/storage"
)

// SaveActionToken сохраняет новый одноразовый токен.
func (s *Storage) SaveActionToken(ctx context.Context, token *models.ActionToken) error {
	const op = "storage.postgres.SaveActionToken"

	query := `
        INSERT INTO action_tokens(token_hash, user_id, purpose, created_at, expires_at, used)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := s.db.Exec(ctx, query,
		token.TokenHash,
		token.UserID,
		token.Purpose,
		token.CreatedAt,
		token.ExpiresAt,
		token.Used,
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

// ConsumeActionToken гасит одноразовый токен. Все условия (владелец,
// назначение, срок, неиспользованность) проверяются одним условным UPDATE,
// поэтому повторное или конкурентное предъявление того же токена гасит его
// ровно один раз.
func (s *Storage) ConsumeActionToken(ctx context.Context, userID uuid.UUID, purpose, hash string, now time.Time) error {
	const op = "storage.postgres.ConsumeActionToken"

	query := `
        UPDATE action_tokens
        SET used = TRUE
        WHERE token_hash = $1 AND user_id = $2 AND purpose = $3 AND used = FALSE AND expires_at > $4
        RETURNING user_id
    `

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query, hash, userID, purpose, now).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteExpiredActionTokens удаляет просроченные одноразовые токены.
func (s *Storage) DeleteExpiredActionTokens(ctx context.Context, now time.Time) error {
	const op = "storage.postgres.DeleteExpiredActionTokens"

	query := `
        DELETE FROM action_tokens
        WHERE expires_at <= $1
    `

	_, err := s.db.Exec(ctx, query, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
