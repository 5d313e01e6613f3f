package httpserver

import (
	"errors"
	"time"

	auction "github.com/dkoroteev/yeticave/internal/auction/application"
	auctiondomain "github.com/dkoroteev/yeticave/internal/auction/domain"
	user "github.com/dkoroteev/yeticave/internal/user/application"
	userdomain "github.com/dkoroteev/yeticave/internal/user/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultPageSize = 9

// Deps are the application services the HTTP layer calls into. The web
// layer owns input parsing and status mapping, nothing else.
type Deps struct {
	Auction  auction.AuctionService
	Register *user.RegisterAccountUseCase
	Accounts userdomain.AccountRepository
}

func registerRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api")

	api.Get("/categories", func(c *fiber.Ctx) error {
		categories, err := deps.Auction.Categories(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(categories)
	})

	api.Get("/lots", func(c *fiber.Ctx) error {
		lots, err := deps.Auction.ActiveLots(c.Context())
		if err != nil {
			return err
		}
		return c.JSON(lots)
	})

	api.Get("/lots/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lot id")
		}
		page, err := deps.Auction.LotPage(c.Context(), int64(id))
		if err != nil {
			return err
		}
		return c.JSON(page)
	})

	api.Get("/lots/:id/bids", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lot id")
		}
		page, err := deps.Auction.LotPage(c.Context(), int64(id))
		if err != nil {
			return err
		}
		return c.JSON(page.Bids)
	})

	api.Get("/categories/:id/lots", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid category id")
		}
		limit := c.QueryInt("limit", defaultPageSize)
		offset := c.QueryInt("offset", 0)
		page, err := deps.Auction.CategoryPage(c.Context(), int64(id), limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(page)
	})

	api.Get("/search", func(c *fiber.Ctx) error {
		term := c.Query("q")
		limit := c.QueryInt("limit", defaultPageSize)
		offset := c.QueryInt("offset", 0)
		lots, err := deps.Auction.Search(c.Context(), term, limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(lots)
	})

	api.Post("/lots", func(c *fiber.Ctx) error {
		var body struct {
			Name        string    `json:"name"`
			Description string    `json:"description"`
			ExpireDate  time.Time `json:"expire_date"`
			StartPrice  int64     `json:"start_price"`
			BetStep     int64     `json:"bet_step"`
			AuthorID    int64     `json:"author_id"`
			CategoryID  int64     `json:"category_id"`
			ImageLink   string    `json:"image_link"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lot payload")
		}
		id, err := deps.Auction.CreateLot(c.Context(), auctiondomain.NewLot{
			Name:        body.Name,
			Description: body.Description,
			ExpireDate:  body.ExpireDate,
			StartPrice:  body.StartPrice,
			BetStep:     body.BetStep,
			AuthorID:    body.AuthorID,
			CategoryID:  body.CategoryID,
			ImageLink:   body.ImageLink,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	})

	api.Post("/lots/:id/bids", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lot id")
		}
		var body struct {
			UserID  int64 `json:"user_id"`
			Summary int64 `json:"summary"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid bid payload")
		}
		if err := deps.Auction.PlaceBid(c.Context(), auction.PlaceBidDTO{
			LotID:   int64(id),
			UserID:  body.UserID,
			Summary: body.Summary,
		}); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusCreated)
	})

	api.Post("/register", func(c *fiber.Ctx) error {
		var body struct {
			Email    string `json:"email"`
			Name     string `json:"name"`
			Password string `json:"password"`
			Contacts string `json:"contacts"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid registration payload")
		}
		id, err := deps.Register.Execute(c.Context(), user.RegisterAccountDTO{
			Email:    body.Email,
			Name:     body.Name,
			Password: body.Password,
			Contacts: body.Contacts,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
	})

	api.Get("/accounts/by-email", func(c *fiber.Ctx) error {
		email := c.Query("email")
		if email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "email is required")
		}
		account, err := deps.Accounts.FindByEmail(c.Context(), email)
		if err != nil {
			return err
		}
		// Password hash never leaves the storage boundary.
		return c.JSON(fiber.Map{
			"id":       account.ID,
			"email":    account.Email,
			"name":     account.Name,
			"contacts": account.Contacts,
		})
	})

	api.Get("/accounts/:id/bids", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
		}
		bids, err := deps.Auction.AccountBids(c.Context(), int64(id))
		if err != nil {
			return err
		}
		return c.JSON(bids)
	})
}

// errorHandler maps domain sentinels to HTTP statuses; everything else
// is a 500 with the wrapped driver diagnostic in the log, not the body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	switch {
	case errors.Is(err, auctiondomain.ErrLotNotFound),
		errors.Is(err, auctiondomain.ErrCategoryNotFound),
		errors.Is(err, userdomain.ErrAccountNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, auctiondomain.ErrLotNotActive),
		errors.Is(err, auctiondomain.ErrBidAmountTooLow),
		errors.Is(err, auctiondomain.ErrInvalidAmount):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, userdomain.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	log.Error("unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
