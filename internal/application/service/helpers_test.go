package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jkarimi/dukapos/internal/domain/repository"
	infra "github.com/jkarimi/dukapos/internal/infrastructure/repository"
)

func newTestRepos(t *testing.T) (repository.CatalogRepository, repository.LedgerRepository) {
	t.Helper()
	dir := t.TempDir()

	catalogRepo, err := infra.NewCatalogRepository(filepath.Join(dir, "inventory_data.json"))
	require.NoError(t, err)
	ledgerRepo, err := infra.NewLedgerRepository(filepath.Join(dir, "sales_history.json"), nil)
	require.NoError(t, err)
	return catalogRepo, ledgerRepo
}

func addItem(t *testing.T, svc *CatalogService, id, name string, qty int, price float64) {
	t.Helper()
	_, err := svc.AddItem(context.Background(), id, &ItemInput{
		Name:     name,
		Quantity: qty,
		Price:    price,
	})
	require.NoError(t, err)
}
