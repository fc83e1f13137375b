package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/courseplan/internal/db"
	"github.com/alexanderramin/courseplan/internal/repository"
	"github.com/alexanderramin/courseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_PutAndGet(t *testing.T) {
	repo := testutil.NewTestKV(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "plannerV2", `{"version":2}`))

	got, err := repo.Get(ctx, "plannerV2")
	require.NoError(t, err)
	assert.Equal(t, `{"version":2}`, got)
}

func TestKVRepo_PutOverwrites(t *testing.T) {
	repo := testutil.NewTestKV(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "plan", `["A"]`))
	require.NoError(t, repo.Put(ctx, "plan", `["B"]`))

	got, err := repo.Get(ctx, "plan")
	require.NoError(t, err)
	assert.Equal(t, `["B"]`, got)
}

func TestKVRepo_GetMissing(t *testing.T) {
	repo := testutil.NewTestKV(t)

	_, err := repo.Get(context.Background(), "plannerV1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestKVRepo_InsideTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteKVRepo(tx)
		if err := txRepo.Put(ctx, "plannerV2", "{}"); err != nil {
			return err
		}
		_, err := txRepo.Get(ctx, "plannerV2")
		return err
	})
	require.NoError(t, err)

	_, err = repository.NewSQLiteKVRepo(database).Get(ctx, "plannerV2")
	assert.NoError(t, err)
}
