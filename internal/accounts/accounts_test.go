package accounts

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/damacus/iron-navigator/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := Open(Config{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewRepository(db)
}

func TestCurrentIdentity_Empty(t *testing.T) {
	repo := newTestRepository(t)

	identity, err := repo.CurrentIdentity(context.Background())

	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestCurrentIdentity_OldestWithoutDefault(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &Account{Name: "first", AccessKey: "AK1", SecretKey: "S1"}))
	require.NoError(t, repo.Save(ctx, &Account{Name: "second", AccessKey: "AK2", SecretKey: "S2"}))

	identity, err := repo.CurrentIdentity(ctx)

	require.NoError(t, err)
	assert.Equal(t, &models.Identity{AccessKey: "AK1", SecretKey: "S1"}, identity)
}

func TestSelect_ChangesCurrentIdentity(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &Account{Name: "first", AccessKey: "AK1", SecretKey: "S1", IsDefault: true}))
	require.NoError(t, repo.Save(ctx, &Account{Name: "second", AccessKey: "AK2", SecretKey: "S2", DefaultRegion: "eu-west-1"}))

	require.NoError(t, repo.Select(ctx, "second"))

	identity, err := repo.CurrentIdentity(ctx)
	require.NoError(t, err)
	assert.Equal(t, "AK2", identity.AccessKey)
	assert.Equal(t, "eu-west-1", identity.DefaultRegion)

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	defaults := 0
	for _, a := range accounts {
		if a.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestSave_DefaultClearsOthers(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &Account{Name: "first", AccessKey: "AK1", SecretKey: "S1", IsDefault: true}))
	require.NoError(t, repo.Save(ctx, &Account{Name: "second", AccessKey: "AK2", SecretKey: "S2", IsDefault: true}))

	first, err := repo.Get(ctx, "first")
	require.NoError(t, err)
	assert.False(t, first.IsDefault)
}

func TestSelect_UnknownAccount(t *testing.T) {
	repo := newTestRepository(t)

	assert.ErrorIs(t, repo.Select(context.Background(), "ghost"), ErrAccountNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, &Account{Name: "gone", AccessKey: "AK", SecretKey: "S"}))

	require.NoError(t, repo.Delete(ctx, "gone"))
	assert.ErrorIs(t, repo.Delete(ctx, "gone"), ErrAccountNotFound)

	_, err := repo.Get(ctx, "gone")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
