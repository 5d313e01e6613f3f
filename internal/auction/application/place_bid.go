package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoroteev/yeticave/internal/auction/domain"
	"github.com/dkoroteev/yeticave/internal/shared/db"
	"github.com/dkoroteev/yeticave/internal/shared/logger"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// PlaceBidDTO is the input for the PlaceBid use case.
type PlaceBidDTO struct {
	LotID   int64
	UserID  int64
	Summary int64
}

// PlaceBidUseCase inserts a bid behind a check-and-insert transaction.
// The storage layer itself trusts its input, so the race between two
// concurrent bids on one lot is serialized here: the lot row is locked
// for the duration of the transaction and the amount is validated
// against the state read under that lock.
type PlaceBidUseCase struct {
	lotRepo domain.LotRepository
	bidRepo domain.BidRepository
	dbPool  db.Pool
}

// NewPlaceBidUseCase creates a new instance of PlaceBidUseCase.
func NewPlaceBidUseCase(lotRepo domain.LotRepository, bidRepo domain.BidRepository, dbPool db.Pool) *PlaceBidUseCase {
	return &PlaceBidUseCase{
		lotRepo: lotRepo,
		bidRepo: bidRepo,
		dbPool:  dbPool,
	}
}

// Execute validates and persists one bid. A bid must beat the current
// price (high bid, or start price when there are none) by at least the
// lot's bet step, and the lot must still be active by the database
// clock at insert time.
func (uc *PlaceBidUseCase) Execute(ctx context.Context, cmd PlaceBidDTO) (err error) {
	if cmd.Summary <= 0 {
		log.Warn("PlaceBid: invalid bid amount",
			zap.Int64("lotID", cmd.LotID),
			zap.Int64("userID", cmd.UserID),
			zap.Int64("summary", cmd.Summary),
		)
		return domain.ErrInvalidAmount
	}

	tx, err := uc.dbPool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("place bid: failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			log.Error("PlaceBid: failed to commit transaction",
				zap.Int64("lotID", cmd.LotID),
				zap.Error(commitErr),
			)
			err = fmt.Errorf("place bid: failed to commit transaction: %w", commitErr)
		}
	}()

	pricing, err := uc.lotRepo.GetForUpdate(ctx, tx, cmd.LotID)
	if err != nil {
		if !errors.Is(err, domain.ErrLotNotFound) {
			log.Error("PlaceBid: failed to lock lot",
				zap.Int64("lotID", cmd.LotID),
				zap.Error(err),
			)
		}
		return fmt.Errorf("place bid: lot %d: %w", cmd.LotID, err)
	}

	if !pricing.Active {
		log.Warn("PlaceBid: lot expired",
			zap.Int64("lotID", cmd.LotID),
			zap.Int64("userID", cmd.UserID),
		)
		return fmt.Errorf("place bid: lot %d: %w", cmd.LotID, domain.ErrLotNotActive)
	}

	highest, err := uc.bidRepo.HighestForLot(ctx, tx, cmd.LotID)
	if err != nil {
		return fmt.Errorf("place bid: highest bid for lot %d: %w", cmd.LotID, err)
	}

	current := pricing.StartPrice
	if highest > current {
		current = highest
	}
	if cmd.Summary < current+pricing.BetStep {
		log.Warn("PlaceBid: amount below minimum",
			zap.Int64("lotID", cmd.LotID),
			zap.Int64("userID", cmd.UserID),
			zap.Int64("summary", cmd.Summary),
			zap.Int64("current", current),
			zap.Int64("betStep", pricing.BetStep),
		)
		return fmt.Errorf("place bid: lot %d: %w", cmd.LotID, domain.ErrBidAmountTooLow)
	}

	if err = uc.bidRepo.Insert(ctx, tx, domain.NewBid{
		Summary: cmd.Summary,
		UserID:  cmd.UserID,
		LotID:   cmd.LotID,
	}); err != nil {
		return fmt.Errorf("place bid: insert bid for lot %d: %w", cmd.LotID, err)
	}

	log.Info("Bid placed",
		zap.Int64("lotID", cmd.LotID),
		zap.Int64("userID", cmd.UserID),
		zap.Int64("summary", cmd.Summary),
	)
	return nil
}
