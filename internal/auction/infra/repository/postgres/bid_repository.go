package postgres

import (
	"context"

	"github.com/dkoroteev/yeticave/internal/auction/domain"
	"github.com/dkoroteev/yeticave/internal/shared/db"
	"github.com/jackc/pgx/v5"
)

// BidRepository implements domain.BidRepository over Postgres.
type BidRepository struct {
	pool db.Querier
}

// NewBidRepository creates a new instance of BidRepository.
func NewBidRepository(pool db.Querier) *BidRepository {
	return &BidRepository{pool: pool}
}

// ListByLotID returns the bids placed on a lot, newest first with ties
// broken by ascending amount. Zero bids is an empty slice, not an error:
// a failed fetch is the only error path.
func (r *BidRepository) ListByLotID(ctx context.Context, lotID int64) ([]domain.BidView, error) {
	query := `
        SELECT bet.create_date, bet.summary, lot.name AS lot_name, account.name AS account_name
        FROM bet
        INNER JOIN lot ON bet.lot_id = lot.id
        INNER JOIN account ON bet.user_id = account.id
        WHERE bet.lot_id = $1
        ORDER BY bet.create_date DESC, bet.summary ASC`
	rows, err := r.pool.Query(ctx, query, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []domain.BidView{}
	for rows.Next() {
		var b domain.BidView
		if err := rows.Scan(&b.CreateDate, &b.Summary, &b.LotName, &b.AccountName); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}

// Insert appends a bid inside the caller's transaction. No business
// checks here: the placing use case validates amount and lot activity
// before calling.
func (r *BidRepository) Insert(ctx context.Context, tx pgx.Tx, bid domain.NewBid) error {
	query := `
        INSERT INTO bet (summary, user_id, lot_id)
        VALUES ($1, $2, $3)`
	_, err := tx.Exec(ctx, query,
		bid.Summary,
		bid.UserID,
		bid.LotID,
	)
	return err
}

// HighestForLot returns the current high bid amount for a lot inside the
// caller's transaction, 0 when the lot has no bids yet.
func (r *BidRepository) HighestForLot(ctx context.Context, tx pgx.Tx, lotID int64) (int64, error) {
	query := `
        SELECT COALESCE(MAX(summary), 0)
        FROM bet
        WHERE lot_id = $1`
	var highest int64
	if err := tx.QueryRow(ctx, query, lotID).Scan(&highest); err != nil {
		return 0, err
	}
	return highest, nil
}

// ListByAccount returns every bid an account has placed, joined with the
// lot and category display fields, ordered by the lot's expiration date
// descending.
func (r *BidRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.AccountBidView, error) {
	query := `
        SELECT bet.id, bet.summary, bet.user_id, bet.lot_id, bet.create_date,
               lot.name AS lot_name, lot.image_link AS lot_img, lot.expire_date,
               category.name AS category_name
        FROM bet
        INNER JOIN lot ON lot.id = bet.lot_id
        INNER JOIN category ON category.id = lot.category_id
        WHERE bet.user_id = $1
        ORDER BY lot.expire_date DESC`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := []domain.AccountBidView{}
	for rows.Next() {
		var b domain.AccountBidView
		err := rows.Scan(
			&b.ID,
			&b.Summary,
			&b.UserID,
			&b.LotID,
			&b.CreateDate,
			&b.LotName,
			&b.LotImage,
			&b.ExpireDate,
			&b.CategoryName,
		)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}
