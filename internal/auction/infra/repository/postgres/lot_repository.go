package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoroteev/yeticave/internal/auction/domain"
	"github.com/dkoroteev/yeticave/internal/shared/db"
	"github.com/jackc/pgx/v5"
)

// lotColumns is the shared projection for lot listings: the lot itself,
// its category name, and the bid count over a LEFT JOIN so lots without
// bids still show up with bet_count = 0.
const lotColumns = `
        lot.id, lot.name, lot.description, lot.expire_date, lot.start_price,
        lot.bet_step, lot.author_id, lot.category_id, lot.image_link, lot.date_create,
        category.name AS category_name, COUNT(bet.id) AS bet_count`

const lotJoins = `
        FROM lot
        INNER JOIN category ON lot.category_id = category.id
        LEFT JOIN bet ON bet.lot_id = lot.id`

// LotRepository implements domain.LotRepository over Postgres.
type LotRepository struct {
	pool db.Querier
}

// NewLotRepository creates a new instance of LotRepository.
func NewLotRepository(pool db.Querier) *LotRepository {
	return &LotRepository{pool: pool}
}

// ListCategories returns every category in storage order. An empty table
// yields an empty slice, never nil.
func (r *LotRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
        SELECT id, name
        FROM category
        ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListActive returns every lot whose expire_date has not passed, oldest
// first. The activity cutoff uses the database clock.
func (r *LotRepository) ListActive(ctx context.Context) ([]domain.LotSummary, error) {
	query := `
        SELECT` + lotColumns + lotJoins + `
        WHERE lot.expire_date >= NOW()
        GROUP BY lot.id, category.name
        ORDER BY lot.date_create`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLotSummaries(rows)
}

// GetByID returns one lot with its category name and bid count, or
// domain.ErrLotNotFound when no row matches.
func (r *LotRepository) GetByID(ctx context.Context, id int64) (*domain.LotSummary, error) {
	query := `
        SELECT` + lotColumns + lotJoins + `
        WHERE lot.id = $1
        GROUP BY lot.id, category.name`
	lot := &domain.LotSummary{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&lot.ID,
		&lot.Name,
		&lot.Description,
		&lot.ExpireDate,
		&lot.StartPrice,
		&lot.BetStep,
		&lot.AuthorID,
		&lot.CategoryID,
		&lot.ImageLink,
		&lot.DateCreate,
		&lot.CategoryName,
		&lot.BetCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLotNotFound
		}
		return nil, err
	}
	return lot, nil
}

// ListByCategory returns one page of active lots in a category plus the
// total number of active lots matching the same predicate. The total is
// a second independent query so pagination metadata stays correct when
// limit < total.
func (r *LotRepository) ListByCategory(ctx context.Context, categoryID int64, limit, offset int) (int, []domain.LotSummary, error) {
	pageQuery := `
        SELECT` + lotColumns + lotJoins + `
        WHERE lot.expire_date >= NOW() AND lot.category_id = $1
        GROUP BY lot.id, category.name
        ORDER BY lot.date_create
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, pageQuery, categoryID, limit, offset)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	lots, err := scanLotSummaries(rows)
	if err != nil {
		return 0, nil, err
	}

	countQuery := `
        SELECT COUNT(*)
        FROM lot
        WHERE lot.category_id = $1 AND lot.expire_date >= NOW()`
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, categoryID).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count lots in category %d: %w", categoryID, err)
	}

	return total, lots, nil
}

// CategoryName resolves a category id to its name, with an explicit
// domain.ErrCategoryNotFound instead of an undefined lookup.
func (r *LotRepository) CategoryName(ctx context.Context, categoryID int64) (string, error) {
	query := `
        SELECT category.name
        FROM category
        WHERE category.id = $1`
	var name string
	err := r.pool.QueryRow(ctx, query, categoryID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCategoryNotFound
		}
		return "", err
	}
	return name, nil
}

// Create inserts a lot and returns the assigned id. Fields are bound by
// name through the typed input struct; date_create comes from the
// database default.
func (r *LotRepository) Create(ctx context.Context, lot domain.NewLot) (int64, error) {
	query := `
        INSERT INTO lot (name, description, expire_date, start_price, bet_step, author_id, category_id, image_link)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		lot.Name,
		lot.Description,
		lot.ExpireDate,
		lot.StartPrice,
		lot.BetStep,
		lot.AuthorID,
		lot.CategoryID,
		lot.ImageLink,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SearchActive is two explicit paths behind one method: a non-empty term
// runs the paginated full-text query; an empty term returns every active
// lot and ignores limit/offset entirely.
func (r *LotRepository) SearchActive(ctx context.Context, term string, limit, offset int) ([]domain.LotSummary, error) {
	if term == "" {
		return r.ListActive(ctx)
	}

	query := `
        SELECT` + lotColumns + lotJoins + `
        WHERE lot.expire_date >= NOW()
          AND to_tsvector('simple', lot.name || ' ' || lot.description) @@ plainto_tsquery('simple', $1)
        GROUP BY lot.id, category.name
        ORDER BY lot.date_create
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, term, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLotSummaries(rows)
}

// GetForUpdate reads the pricing fields of a lot with a row lock inside
// tx, so a concurrent bid on the same lot serializes behind it. Active
// is evaluated by the database clock in the same statement.
func (r *LotRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.LotPricing, error) {
	query := `
        SELECT start_price, bet_step, expire_date >= NOW() AS active
        FROM lot
        WHERE id = $1
        FOR UPDATE`
	pricing := &domain.LotPricing{}
	err := tx.QueryRow(ctx, query, id).Scan(
		&pricing.StartPrice,
		&pricing.BetStep,
		&pricing.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLotNotFound
		}
		return nil, err
	}
	return pricing, nil
}

func scanLotSummaries(rows pgx.Rows) ([]domain.LotSummary, error) {
	lots := []domain.LotSummary{}
	for rows.Next() {
		var lot domain.LotSummary
		err := rows.Scan(
			&lot.ID,
			&lot.Name,
			&lot.Description,
			&lot.ExpireDate,
			&lot.StartPrice,
			&lot.BetStep,
			&lot.AuthorID,
			&lot.CategoryID,
			&lot.ImageLink,
			&lot.DateCreate,
			&lot.CategoryName,
			&lot.BetCount,
		)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lots, nil
}
