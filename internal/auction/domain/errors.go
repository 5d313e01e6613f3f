package domain

import "errors"

var (
	ErrLotNotFound      = errors.New("auction lot not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLotNotActive     = errors.New("auction lot is not active")
	ErrBidAmountTooLow  = errors.New("bid amount is too low")
	ErrInvalidAmount    = errors.New("bid amount cannot be zero or less than zero")
)
