package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mvoronova/identity-service/internal/models"
	"github.com/mvoronova/identity-service/internal/storage"
)

func TestIntegration_SaveExternalLogin_And_ListByUser(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	u := mustSaveUser(t, st, "user@example.com")

	require.NoError(t, st.SaveExternalLogin(ctx, &models.ExternalLogin{
		Provider:    "google",
		ProviderKey: "sub-1",
		UserID:      u.ID,
		CreatedAt:   now,
	}))
	require.NoError(t, st.SaveExternalLogin(ctx, &models.ExternalLogin{
		Provider:    "github",
		ProviderKey: "gh-7",
		UserID:      u.ID,
		CreatedAt:   now.Add(time.Second),
	}))

	logins, err := st.ExternalLoginsByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, logins, 2)
	require.Equal(t, "google", logins[0].Provider)
	require.Equal(t, "sub-1", logins[0].ProviderKey)
	require.Equal(t, "github", logins[1].Provider)
}

// TestIntegration_SaveExternalLogin_DuplicatePair — пара (provider, provider_key)
// уникальна независимо от владельца.
func TestIntegration_SaveExternalLogin_DuplicatePair(t *testing.T) {
	st, cleanup := startPostgres(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	u := mustSaveUser(t, st, "user@example.com")
	other := mustSaveUser(t, st, "other@example.com")

	require.NoError(t, st.SaveExternalLogin(ctx, &models.ExternalLogin{
		Provider:    "google",
		ProviderKey: "sub-1",
		UserID:      u.ID,
		CreatedAt:   now,
	}))

	err := st.SaveExternalLogin(ctx, &models.ExternalLogin{
		Provider:    "google",
		ProviderKey: "sub-1",
		UserID:      other.ID,
		CreatedAt:   now,
	})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}
