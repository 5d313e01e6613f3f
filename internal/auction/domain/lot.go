package domain

import "time"

// Category is static reference data, seeded by migration.
type Category struct {
	ID   int64
	Name string
}

// Lot is an auction listing. A lot is active while expire_date has not
// passed; activity is always evaluated against the database clock, never
// the caller's, so read and write paths cannot disagree.
type Lot struct {
	ID          int64
	Name        string
	Description string
	ExpireDate  time.Time
	StartPrice  int64 // minor currency units
	BetStep     int64
	AuthorID    int64
	CategoryID  int64
	ImageLink   string
	DateCreate  time.Time
}

// LotSummary is a Lot joined with its category name and the number of
// bids placed on it. BetCount comes from a LEFT JOIN count, so a lot
// without bids is still listed with BetCount 0.
type LotSummary struct {
	Lot
	CategoryName string
	BetCount     int64
}

// LotPricing is the slice of a lot the bid guard needs, read with a row
// lock inside the placing transaction. Active is computed in SQL against
// the database clock.
type LotPricing struct {
	StartPrice int64
	BetStep    int64
	Active     bool
}

// NewLot carries the caller-validated fields for lot creation. Named
// fields instead of positional binding: the insert maps each field to a
// named column exactly once.
type NewLot struct {
	Name        string
	Description string
	ExpireDate  time.Time
	StartPrice  int64
	BetStep     int64
	AuthorID    int64
	CategoryID  int64
	ImageLink   string
}
