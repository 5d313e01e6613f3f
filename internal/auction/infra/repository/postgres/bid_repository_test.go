package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/dkoroteev/yeticave/internal/auction/domain"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/require"
)

func TestBidRepository_ListByLotID(t *testing.T) {
	t.Parallel()

	t.Run("orders_newest_first_ties_by_ascending_amount", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		base := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
		rows := pgxmock.NewRows([]string{"create_date", "summary", "lot_name", "account_name"}).
			AddRow(base, int64(6000), "board", "Anna").
			AddRow(base.Add(-time.Minute), int64(5200), "board", "Boris").
			AddRow(base.Add(-time.Minute), int64(5500), "board", "Clara")

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY bet.create_date DESC, bet.summary ASC")).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		repo := NewBidRepository(mock)
		bids, err := repo.ListByLotID(context.Background(), 7)
		require.NoError(t, err)
		require.Len(t, bids, 3)
		// Adjacent entries: strictly later create_date, or equal
		// create_date with non-decreasing summary.
		for i := 0; i < len(bids)-1; i++ {
			cur, next := bids[i], bids[i+1]
			if cur.CreateDate.Equal(next.CreateDate) {
				require.LessOrEqual(t, cur.Summary, next.Summary)
			} else {
				require.True(t, cur.CreateDate.After(next.CreateDate))
			}
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero_bids_is_empty_slice_not_error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE bet.lot_id = $1")).
			WithArgs(int64(8)).
			WillReturnRows(pgxmock.NewRows([]string{"create_date", "summary", "lot_name", "account_name"}))

		repo := NewBidRepository(mock)
		bids, err := repo.ListByLotID(context.Background(), 8)
		require.NoError(t, err)
		require.NotNil(t, bids)
		require.Empty(t, bids)
	})

	t.Run("fetch_failure_is_an_error_not_nil_result", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE bet.lot_id = $1")).
			WithArgs(int64(9)).
			WillReturnError(context.DeadlineExceeded)

		repo := NewBidRepository(mock)
		bids, err := repo.ListByLotID(context.Background(), 9)
		require.Error(t, err)
		require.Nil(t, bids)
	})
}

func TestBidRepository_Insert(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bet")).
		WithArgs(int64(6000), int64(3), int64(7)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	repo := NewBidRepository(mock)
	err = repo.Insert(context.Background(), tx, domain.NewBid{
		Summary: 6000,
		UserID:  3,
		LotID:   7,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBidRepository_HighestForLot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  int64
		want int64
	}{
		{name: "existing_bids", row: 7500, want: 7500},
		{name: "no_bids_coalesces_to_zero", row: 0, want: 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta("COALESCE(MAX(summary), 0)")).
				WithArgs(int64(7)).
				WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(tc.row))
			mock.ExpectCommit()

			tx, err := mock.Begin(context.Background())
			require.NoError(t, err)

			repo := NewBidRepository(mock)
			highest, err := repo.HighestForLot(context.Background(), tx, 7)
			require.NoError(t, err)
			require.Equal(t, tc.want, highest)
			require.NoError(t, tx.Commit(context.Background()))
		})
	}
}

func TestBidRepository_ListByAccount(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	later := time.Now().Add(72 * time.Hour)
	sooner := time.Now().Add(24 * time.Hour)
	rows := pgxmock.NewRows([]string{
		"id", "summary", "user_id", "lot_id", "create_date",
		"lot_name", "lot_img", "expire_date", "category_name",
	}).
		AddRow(int64(1), int64(6000), int64(3), int64(7), time.Now(), "board", "img/board.jpg", later, "Доски и лыжи").
		AddRow(int64(2), int64(900), int64(3), int64(8), time.Now(), "boots", "img/boots.jpg", sooner, "Ботинки")

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY lot.expire_date DESC")).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	repo := NewBidRepository(mock)
	bids, err := repo.ListByAccount(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, "board", bids[0].LotName)
	require.Equal(t, "Ботинки", bids[1].CategoryName)
	require.True(t, bids[0].ExpireDate.After(bids[1].ExpireDate))
	require.NoError(t, mock.ExpectationsWereMet())
}
