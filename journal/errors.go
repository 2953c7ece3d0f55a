package journal

import "errors"

var (
	ErrInvalidTicker     = errors.New("ticker is required")
	ErrInvalidEntryPrice = errors.New("entry price must be a positive number")
	ErrInvalidSide       = errors.New("position must be long or short")
	ErrInvalidSize       = errors.New("invalid position size")
	ErrInvalidRatio      = errors.New("invalid risk/reward ratio")
	ErrInvalidPrice      = errors.New("invalid exit price")
	ErrInvalidPnL        = errors.New("invalid P&L")
	ErrTradeNotFound     = errors.New("trade not found")
	ErrNotFound          = errors.New("key not found")
)
