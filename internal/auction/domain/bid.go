package domain

import "time"

// Bid is a monetary offer tied to one lot and one account. Bids are
// append-only: never updated, never deleted.
type Bid struct {
	ID         int64
	Summary    int64 // amount, minor currency units
	UserID     int64
	LotID      int64
	CreateDate time.Time
}

// BidView is a bid joined with the display fields the lot page needs.
type BidView struct {
	CreateDate  time.Time
	Summary     int64
	LotName     string
	AccountName string
}

// AccountBidView is a bid joined with its lot and category, for the
// "my bids" listing ordered by the lot's expiration.
type AccountBidView struct {
	Bid
	LotName      string
	LotImage     string
	ExpireDate   time.Time
	CategoryName string
}

// NewBid carries the fields for a bid insert.
type NewBid struct {
	Summary int64
	UserID  int64
	LotID   int64
}
