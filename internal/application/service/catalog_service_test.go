package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkarimi/dukapos/pkg/apperror"
)

func TestCatalogServiceAddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a valid item", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)

		item, err := svc.AddItem(ctx, "A001", &ItemInput{Name: "Widget", Quantity: 10, Price: 2.50})
		require.NoError(t, err)
		assert.Equal(t, "A001", item.ID)
		assert.Equal(t, 10, item.Quantity)
	})

	t.Run("rejects duplicate IDs", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)
		addItem(t, svc, "A001", "Widget", 10, 2.50)

		_, err := svc.AddItem(ctx, "A001", &ItemInput{Name: "Widget", Quantity: 1, Price: 1})
		assert.True(t, apperror.IsKind(err, apperror.KindDuplicateID))
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)

		cases := []struct {
			name  string
			id    string
			input ItemInput
		}{
			{"empty ID", " ", ItemInput{Name: "Widget", Quantity: 1, Price: 1}},
			{"empty name", "A001", ItemInput{Name: "  ", Quantity: 1, Price: 1}},
			{"negative quantity", "A001", ItemInput{Name: "Widget", Quantity: -1, Price: 1}},
			{"negative price", "A001", ItemInput{Name: "Widget", Quantity: 1, Price: -0.01}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.AddItem(ctx, tc.id, &tc.input)
				assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput))
			})
		}
	})
}

func TestCatalogServiceUpdateRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("update replaces fields", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)
		addItem(t, svc, "A001", "Widget", 10, 2.50)

		item, err := svc.UpdateItem(ctx, "A001", &ItemInput{Name: "Widget v2", Quantity: 4, Price: 2.75})
		require.NoError(t, err)
		assert.Equal(t, "Widget v2", item.Name)
		assert.Equal(t, 4, item.Quantity)
	})

	t.Run("update of missing item fails", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)

		_, err := svc.UpdateItem(ctx, "A404", &ItemInput{Name: "Ghost", Quantity: 1, Price: 1})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})

	t.Run("remove of missing item fails", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)

		err := svc.RemoveItem(ctx, "A404")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestCatalogServiceStockAdjustments(t *testing.T) {
	ctx := context.Background()

	t.Run("incoming adds stock", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)
		addItem(t, svc, "A001", "Widget", 10, 2.50)

		item, err := svc.IncomingStock(ctx, "A001", 5)
		require.NoError(t, err)
		assert.Equal(t, 15, item.Quantity)
	})

	t.Run("outgoing beyond stock fails and quantity stays non-negative", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)
		addItem(t, svc, "A002", "Gadget", 3, 5.00)

		_, err := svc.OutgoingStock(ctx, "A002", 4)
		assert.True(t, apperror.IsKind(err, apperror.KindInsufficientStock))

		item, err := svc.GetItem(ctx, "A002")
		require.NoError(t, err)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("non-positive adjustments are rejected", func(t *testing.T) {
		catalogRepo, _ := newTestRepos(t)
		svc := NewCatalogService(catalogRepo, nil)
		addItem(t, svc, "A001", "Widget", 10, 2.50)

		_, err := svc.IncomingStock(ctx, "A001", 0)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidQuantity))

		_, err = svc.OutgoingStock(ctx, "A001", -2)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidQuantity))
	})
}

func TestCatalogServiceSearch(t *testing.T) {
	ctx := context.Background()
	catalogRepo, _ := newTestRepos(t)
	svc := NewCatalogService(catalogRepo, nil)
	addItem(t, svc, "A001", "Widget", 10, 2.50)
	addItem(t, svc, "A002", "Gadget", 3, 5.00)

	items, err := svc.SearchItems(ctx, "gad")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A002", items[0].ID)

	items, err = svc.SearchItems(ctx, "a00")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
