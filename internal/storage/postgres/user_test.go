package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/storage"
)

// TestIntegration_SaveUser_And_FindByEmailAndID — happy-path: сохранение
// и последующий поиск по email (CITEXT, регистронезависимо) и по ID.
func TestIntegration_SaveUser_And_FindByEmailAndID(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	now := time.Now().UTC()
	u := &models.User{
		ID:           uuid.New(),
		Email:        "User@Example.Com",
		PasswordHash: "hash",
		Username:     "user",
		FirstName:    "Анна",
		LastName:     "Иванова",
		Roles:        []string{"user"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	require.NoError(t, st.SaveUser(context.Background(), u))

	gotByEmail, err := st.UserByEmail(context.Background(), strings.ToLower(u.Email))
	require.NoError(t, err)
	require.Equal(t, u.ID, gotByEmail.ID)
	require.False(t, gotByEmail.EmailConfirmed)
	require.Equal(t, u.Roles, gotByEmail.Roles)
	require.WithinDuration(t, u.CreatedAt, gotByEmail.CreatedAt, time.Second)

	gotByID, err := st.UserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, gotByID.ID)
	require.Equal(t, "Анна", gotByID.FirstName)
}

// TestIntegration_SaveUser_UniqueEmail_CaseInsensitive — конфликт уникальности
// по email при различии только в регистре.
func TestIntegration_SaveUser_UniqueEmail_CaseInsensitive(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	mustSaveUser(t, st, "user@example.com")

	now := time.Now().UTC()
	dup := &models.User{
		ID:        uuid.New(),
		Email:     "USER@EXAMPLE.COM",
		Username:  "dup",
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := st.SaveUser(context.Background(), dup)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestIntegration_UserByEmail_NotFound(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	_, err := st.UserByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestIntegration_ConfirmUserEmail — флаг подтверждения выставляется,
// updated_at двигается вперёд.
func TestIntegration_ConfirmUserEmail(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")

	require.NoError(t, st.ConfirmUserEmail(context.Background(), u.ID))

	got, err := st.UserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, got.EmailConfirmed)
	require.True(t, got.UpdatedAt.After(u.UpdatedAt) || got.UpdatedAt.Equal(u.UpdatedAt))

	require.ErrorIs(t, st.ConfirmUserEmail(context.Background(), uuid.New()), storage.ErrNotFound)
}

func TestIntegration_UpdatePasswordHash(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	u := mustSaveUser(t, st, "user@example.com")

	require.NoError(t, st.UpdatePasswordHash(context.Background(), u.ID, "new-hash"))

	got, err := st.UserByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "new-hash", got.PasswordHash)

	require.ErrorIs(t, st.UpdatePasswordHash(context.Background(), uuid.New(), "x"), storage.ErrNotFound)
}

// TestIntegration_DeleteUser_CascadesTokens — удаление пользователя каскадно
// убирает его refresh-токены и внешние связи.
func TestIntegration_DeleteUser_CascadesTokens(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	u := mustSaveUser(t, st, "user@example.com")

	now := time.Now().UTC()
	require.NoError(t, st.SaveRefreshToken(ctx, &models.RefreshToken{
		RefreshTokenHash: "rt-hash",
		UserID:           u.ID,
		CreatedAt:        now,
		ExpiresAt:        now.Add(time.Hour),
	}))
	require.NoError(t, st.SaveExternalLogin(ctx, &models.ExternalLogin{
		Provider:    "google",
		ProviderKey: "sub-1",
		UserID:      u.ID,
		CreatedAt:   now,
	}))

	require.NoError(t, st.DeleteUser(ctx, u.ID))

	_, err := st.ActiveRefreshTokenByHash(ctx, "rt-hash")
	require.ErrorIs(t, err, storage.ErrNotFound)

	logins, err := st.ExternalLoginsByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, logins)

	require.ErrorIs(t, st.DeleteUser(ctx, u.ID), storage.ErrNotFound)
}
