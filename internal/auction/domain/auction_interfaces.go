package domain

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// LotRepository owns every read/write over lots and categories. Single
// lookups return ErrLotNotFound / ErrCategoryNotFound for missing rows;
// any other error is the underlying driver diagnostic, propagated as-is.
type LotRepository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListActive(ctx context.Context) ([]LotSummary, error)
	GetByID(ctx context.Context, id int64) (*LotSummary, error)
	// ListByCategory returns the page and the total count of active lots
	// in the category. The total comes from an independent count query,
	// never from the page length.
	ListByCategory(ctx context.Context, categoryID int64, limit, offset int) (int, []LotSummary, error)
	CategoryName(ctx context.Context, categoryID int64) (string, error)
	Create(ctx context.Context, lot NewLot) (int64, error)
	// SearchActive runs the full-text query for a non-empty term. An
	// empty term returns every active lot, ignoring limit and offset.
	SearchActive(ctx context.Context, term string, limit, offset int) ([]LotSummary, error)
	// GetForUpdate locks the lot row inside tx for the bid guard.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*LotPricing, error)
}

// BidRepository owns every read/write over bids. Insert performs no
// business checks; the placing use case is responsible for the guard.
type BidRepository interface {
	ListByLotID(ctx context.Context, lotID int64) ([]BidView, error)
	Insert(ctx context.Context, tx pgx.Tx, bid NewBid) error
	HighestForLot(ctx context.Context, tx pgx.Tx, lotID int64) (int64, error)
	ListByAccount(ctx context.Context, accountID int64) ([]AccountBidView, error)
}
