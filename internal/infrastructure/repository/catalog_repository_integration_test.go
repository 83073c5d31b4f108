package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zelador/internal/domain/admin"
	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/domain/catalog"
)

func TestSupplierRepository_SaveAndGet(t *testing.T) {
	repo := NewSupplierRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	s, err := catalog.NewSupplier("Canalizações Silva", "silva@example.com", "+351 912 345 678", "canalizador", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))
	assert.NotZero(t, s.ID())

	found, err := repo.GetByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "silva@example.com", found.Email())
	assert.True(t, found.Active())
}

func TestSupplierRepository_DuplicateEmail(t *testing.T) {
	repo := NewSupplierRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	first, err := catalog.NewSupplier("Canalizações Silva", "silva@example.com", "", "canalizador", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := catalog.NewSupplier("Outra Empresa", "silva@example.com", "", "eletricista", now)
	require.NoError(t, err)
	assert.Error(t, repo.Save(ctx, second))
}

func TestSupplierRepository_List(t *testing.T) {
	repo := NewSupplierRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	active, err := catalog.NewSupplier("Canalizações Silva", "silva@example.com", "", "canalizador", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, active))

	inactive, err := catalog.NewSupplier("Eletricidade Costa", "costa@example.com", "", "eletricista", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, inactive))
	inactive.Deactivate(now)
	require.NoError(t, repo.Update(ctx, inactive))

	t.Run("active only", func(t *testing.T) {
		items, total, err := repo.List(ctx, catalog.ListFilter{ActiveOnly: true, Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, active.ID(), items[0].ID())
	})

	t.Run("search matches name", func(t *testing.T) {
		items, total, err := repo.List(ctx, catalog.ListFilter{Search: "Costa", Page: 1, PageSize: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, inactive.ID(), items[0].ID())
	})
}

func TestBuildingRepository_Delete(t *testing.T) {
	gormDB := setupTestDB(t)
	buildingRepo := NewBuildingRepository(gormDB)
	assistanceRepo := NewAssistanceRepository(gormDB)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("blocked while referenced", func(t *testing.T) {
		b, err := catalog.NewBuilding("Edifício Aurora", "Rua das Flores 12, Lisboa", "Dona Amélia", now)
		require.NoError(t, err)
		require.NoError(t, buildingRepo.Save(ctx, b))

		createReferencingAssistance(t, assistanceRepo, b.ID(), now)

		assert.ErrorIs(t, buildingRepo.Delete(ctx, b.ID()), catalog.ErrInUse)
	})

	t.Run("unreferenced building deletes", func(t *testing.T) {
		b, err := catalog.NewBuilding("Edifício Miradouro", "Avenida Central 3, Porto", "", now)
		require.NoError(t, err)
		require.NoError(t, buildingRepo.Save(ctx, b))

		require.NoError(t, buildingRepo.Delete(ctx, b.ID()))
		_, err = buildingRepo.GetByID(ctx, b.ID())
		assert.ErrorIs(t, err, catalog.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, buildingRepo.Delete(ctx, 999), catalog.ErrNotFound)
	})
}

func createReferencingAssistance(t *testing.T, repo *AssistanceRepository, buildingID uint, now time.Time) {
	t.Helper()

	a, err := assistance.NewAssistance(buildingID, 2, nil, vo.UrgencyNormal, "Elevador parado no piso 3", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), a))
}

func TestAdminUserRepository(t *testing.T) {
	repo := NewAdminUserRepository(setupTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	u, err := admin.NewUser("Gestora", "gestao@example.com", "$2a$10$notarealhashnotarealhashnotarea", now)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))
	assert.NotZero(t, u.ID())

	t.Run("GetByEmail", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "gestao@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID(), found.ID())
	})

	t.Run("GetByEmail unknown", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, admin.ErrNotFound)
	})

	t.Run("ListEmails", func(t *testing.T) {
		other, err := admin.NewUser("Gestor", "admin@example.com", "$2a$10$notarealhashnotarealhashnotarea", now)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, other))

		emails, err := repo.ListEmails(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"gestao@example.com", "admin@example.com"}, emails)
	})
}
