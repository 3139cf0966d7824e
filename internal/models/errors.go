package models

import "errors"

var (
	ErrInvalidSymbol     = errors.New("invalid symbol")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidTimestamp  = errors.New("invalid date")
	ErrInvalidBar        = errors.New("invalid bar (high/low do not bracket open/close)")
	ErrInvalidVolume     = errors.New("invalid volume")
	ErrEmptySeries       = errors.New("bar series is empty")
	ErrNonMonotonicDates = errors.New("bar dates must be strictly increasing")
	ErrInvalidMetric     = errors.New("invalid metric")
	ErrInvalidOperator   = errors.New("invalid operator")
	ErrInvalidRuleReason = errors.New("attention rule must have a reason")
)
