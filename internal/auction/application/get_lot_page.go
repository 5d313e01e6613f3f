package application

import (
	"context"
	"fmt"
	"time"

	"github.com/dkoroteev/yeticave/internal/auction/domain"
	"github.com/dkoroteev/yeticave/internal/format"
)

// BidDTO is one bid on the lot page, with its timestamp already rendered
// as a relative label.
type BidDTO struct {
	AccountName string    `json:"account_name"`
	Summary     int64     `json:"summary"`
	Display     string    `json:"display"`
	PlacedAgo   string    `json:"placed_ago"`
	CreateDate  time.Time `json:"create_date"`
}

// LotPageDTO is the full lot page: the lot joined with its category,
// display prices, and the bid history.
type LotPageDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryName string    `json:"category_name"`
	ImageLink    string    `json:"image_link"`
	ExpireDate   time.Time `json:"expire_date"`
	StartPrice   int64     `json:"start_price"`
	BetStep      int64     `json:"bet_step"`
	PriceDisplay string    `json:"price_display"`
	MinBid       int64     `json:"min_bid"`
	BetCount     int64     `json:"bet_count"`
	BetCountText string    `json:"bet_count_text"`
	TimeLeft     string    `json:"time_left"`
	Bids         []BidDTO  `json:"bids"`
}

var betForms = [3]string{"ставка", "ставки", "ставок"}

// GetLotPageUseCase assembles the lot page from the lot record and its
// bid history.
type GetLotPageUseCase struct {
	lotRepo domain.LotRepository
	bidRepo domain.BidRepository
}

// NewGetLotPageUseCase creates a new instance of GetLotPageUseCase.
func NewGetLotPageUseCase(lotRepo domain.LotRepository, bidRepo domain.BidRepository) *GetLotPageUseCase {
	return &GetLotPageUseCase{
		lotRepo: lotRepo,
		bidRepo: bidRepo,
	}
}

func (uc *GetLotPageUseCase) Execute(ctx context.Context, lotID int64) (*LotPageDTO, error) {
	lot, err := uc.lotRepo.GetByID(ctx, lotID)
	if err != nil {
		return nil, err
	}

	bids, err := uc.bidRepo.ListByLotID(ctx, lotID)
	if err != nil {
		return nil, fmt.Errorf("lot page: bids for lot %d: %w", lotID, err)
	}

	// The current price is the newest bid when one exists, the start
	// price otherwise. Bids arrive ordered newest first.
	price := lot.StartPrice
	if len(bids) > 0 {
		price = bids[0].Summary
	}

	now := time.Now()
	hours, minutes, seconds := format.Countdown(lot.ExpireDate, now)
	dto := &LotPageDTO{
		ID:           lot.ID,
		Name:         lot.Name,
		Description:  lot.Description,
		CategoryName: lot.CategoryName,
		ImageLink:    lot.ImageLink,
		ExpireDate:   lot.ExpireDate,
		StartPrice:   lot.StartPrice,
		BetStep:      lot.BetStep,
		PriceDisplay: format.Money(price),
		MinBid:       price + lot.BetStep,
		BetCount:     lot.BetCount,
		BetCountText: fmt.Sprintf("%d %s", lot.BetCount, format.NumToWord(lot.BetCount, betForms)),
		TimeLeft:     hours + ":" + minutes + ":" + seconds,
		Bids:         make([]BidDTO, 0, len(bids)),
	}
	for _, b := range bids {
		dto.Bids = append(dto.Bids, BidDTO{
			AccountName: b.AccountName,
			Summary:     b.Summary,
			Display:     format.Money(b.Summary),
			PlacedAgo:   format.TimeAgo(b.CreateDate, now),
			CreateDate:  b.CreateDate,
		})
	}
	return dto, nil
}
