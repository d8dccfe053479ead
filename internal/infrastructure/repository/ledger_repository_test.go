package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/internal/infrastructure/store"
)

func newTestLedger(t *testing.T) (repository.LedgerRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_history.json")
	repo, err := NewLedgerRepository(path, nil)
	require.NoError(t, err)
	return repo, path
}

func saleAt(datetime string, items map[string]int, total float64) *entity.SaleRecord {
	totalItems := 0
	for _, qty := range items {
		totalItems += qty
	}
	return &entity.SaleRecord{
		Datetime:   datetime,
		Items:      items,
		Total:      total,
		MoneyGiven: total,
		ChangeDue:  0,
		Discount:   0,
		TotalItems: totalItems,
	}
}

func TestLedgerRepositoryAppend(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestLedger(t)

	require.NoError(t, repo.Append(ctx, saleAt("2024-03-01 10:00:00", map[string]int{"A001": 2}, 5.00)))
	require.NoError(t, repo.Append(ctx, saleAt("2024-03-02 11:30:00", map[string]int{"A002": 1}, 5.00)))

	records, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-01 10:00:00", records[0].Datetime)
	assert.Equal(t, "2024-03-02 11:30:00", records[1].Datetime)

	// History is persisted immediately in insertion order.
	reloaded, err := NewLedgerRepository(path, nil)
	require.NoError(t, err)
	again, err := reloaded.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

func TestLedgerRepositoryInRange(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestLedger(t)

	require.NoError(t, repo.Append(ctx, saleAt("2024-03-01 10:00:00", map[string]int{"A001": 2}, 5.00)))
	require.NoError(t, repo.Append(ctx, saleAt("2024-03-02 00:00:00", map[string]int{"A002": 1}, 5.00)))
	require.NoError(t, repo.Append(ctx, saleAt("2024-03-03 09:00:00", map[string]int{"A001": 1}, 2.50)))

	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	collect := func(start, end time.Time) []string {
		var dates []string
		for record := range repo.InRange(ctx, start, end) {
			dates = append(dates, record.Datetime)
		}
		return dates
	}

	t.Run("start is inclusive and end is exclusive", func(t *testing.T) {
		dates := collect(day("2024-03-01"), day("2024-03-02"))
		assert.Equal(t, []string{"2024-03-01 10:00:00"}, dates)

		dates = collect(day("2024-03-02"), day("2024-03-04"))
		assert.Equal(t, []string{"2024-03-02 00:00:00", "2024-03-03 09:00:00"}, dates)
	})

	t.Run("empty range yields nothing", func(t *testing.T) {
		assert.Empty(t, collect(day("2023-01-01"), day("2023-02-01")))
	})

	t.Run("malformed timestamps are skipped, not fatal", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, saleAt("not-a-date", map[string]int{"A001": 1}, 2.50)))

		dates := collect(day("2024-03-01"), day("2024-03-04"))
		assert.Len(t, dates, 3)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		seq := repo.InRange(ctx, day("2024-03-01"), day("2024-03-04"))
		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		assert.Equal(t, first, second)
	})
}

func TestLedgerRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestLedger(t)

	require.NoError(t, repo.Append(ctx, &entity.SaleRecord{
		Datetime:   "2024-03-01 10:00:00",
		Items:      map[string]int{"A001": 4},
		Total:      9.00,
		MoneyGiven: 10.00,
		ChangeDue:  1.00,
		Discount:   10,
		TotalItems: 4,
	}))

	original, err := os.ReadFile(path)
	require.NoError(t, err)

	loaded, err := store.Load(path, []entity.SaleRecord{})
	require.NoError(t, err)
	copyPath := filepath.Join(t.TempDir(), "copy.json")
	require.NoError(t, store.Save(copyPath, loaded))

	written, err := os.ReadFile(copyPath)
	require.NoError(t, err)
	assert.Equal(t, original, written)
}
