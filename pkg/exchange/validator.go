package exchange

import "errors"

// Rejection reasons, in the exact wording the report stream carries.
var (
	ErrInvalidClientOrderID = errors.New("Invalid client order ID")
	ErrInvalidInstrument    = errors.New("Invalid instrument")
	ErrInvalidSide          = errors.New("Invalid side")
	ErrInvalidPrice         = errors.New("Invalid price")
	ErrInvalidQuantity      = errors.New("Invalid quantity")
)

// Validate checks the five request fields in fixed precedence order and
// returns the first failing rule, or nil. It has no side effects; callers
// turn a non-nil result into a single Reject report.
func Validate(req OrderRequest) error {
	if req.ClientOrderID == "" || len(req.ClientOrderID) > 7 {
		return ErrInvalidClientOrderID
	}
	if !req.Instrument.Valid() {
		return ErrInvalidInstrument
	}
	if req.Side != Buy && req.Side != Sell {
		return ErrInvalidSide
	}
	if req.Price <= 0 {
		return ErrInvalidPrice
	}
	if req.Quantity < 10 || req.Quantity > 1000 || req.Quantity%10 != 0 {
		return ErrInvalidQuantity
	}
	return nil
}
