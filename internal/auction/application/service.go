package application

import (
	"context"

	"github.com/dkoroteev/yeticave/internal/auction/domain"
)

// AuctionService is the application surface the HTTP layer consumes.
// Queries pass straight through to the repositories; PlaceBid goes
// through the transactional guard.
type AuctionService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	ActiveLots(ctx context.Context) ([]domain.LotSummary, error)
	LotPage(ctx context.Context, lotID int64) (*LotPageDTO, error)
	CategoryPage(ctx context.Context, categoryID int64, limit, offset int) (*CategoryPageDTO, error)
	Search(ctx context.Context, term string, limit, offset int) ([]domain.LotSummary, error)
	CreateLot(ctx context.Context, lot domain.NewLot) (int64, error)
	PlaceBid(ctx context.Context, cmd PlaceBidDTO) error
	AccountBids(ctx context.Context, accountID int64) ([]domain.AccountBidView, error)
}

// CategoryPageDTO is one page of a category listing plus the metadata
// the pager needs. Total always reflects every active lot in the
// category, not just this page.
type CategoryPageDTO struct {
	CategoryName string              `json:"category_name"`
	Total        int                 `json:"total"`
	Lots         []domain.LotSummary `json:"lots"`
}

type auctionService struct {
	lotRepo      domain.LotRepository
	bidRepo      domain.BidRepository
	placeBidUC   *PlaceBidUseCase
	getLotPageUC *GetLotPageUseCase
}

// NewAuctionService wires the repositories and use cases into one
// service value.
func NewAuctionService(lotRepo domain.LotRepository, bidRepo domain.BidRepository,
	placeBidUC *PlaceBidUseCase, getLotPageUC *GetLotPageUseCase) AuctionService {
	return &auctionService{
		lotRepo:      lotRepo,
		bidRepo:      bidRepo,
		placeBidUC:   placeBidUC,
		getLotPageUC: getLotPageUC,
	}
}

func (as *auctionService) Categories(ctx context.Context) ([]domain.Category, error) {
	return as.lotRepo.ListCategories(ctx)
}

func (as *auctionService) ActiveLots(ctx context.Context) ([]domain.LotSummary, error) {
	return as.lotRepo.ListActive(ctx)
}

func (as *auctionService) LotPage(ctx context.Context, lotID int64) (*LotPageDTO, error) {
	return as.getLotPageUC.Execute(ctx, lotID)
}

func (as *auctionService) CategoryPage(ctx context.Context, categoryID int64, limit, offset int) (*CategoryPageDTO, error) {
	name, err := as.lotRepo.CategoryName(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	total, lots, err := as.lotRepo.ListByCategory(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &CategoryPageDTO{
		CategoryName: name,
		Total:        total,
		Lots:         lots,
	}, nil
}

func (as *auctionService) Search(ctx context.Context, term string, limit, offset int) ([]domain.LotSummary, error) {
	return as.lotRepo.SearchActive(ctx, term, limit, offset)
}

func (as *auctionService) CreateLot(ctx context.Context, lot domain.NewLot) (int64, error) {
	return as.lotRepo.Create(ctx, lot)
}

func (as *auctionService) PlaceBid(ctx context.Context, cmd PlaceBidDTO) error {
	return as.placeBidUC.Execute(ctx, cmd)
}

func (as *auctionService) AccountBids(ctx context.Context, accountID int64) ([]domain.AccountBidView, error) {
	return as.bidRepo.ListByAccount(ctx, accountID)
}
