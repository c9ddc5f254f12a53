package exchange

import (
	"testing"

	"github.com/petalex/engine/pkg/exchange/instrument"
)

func TestValidate(t *testing.T) {
	valid := OrderRequest{
		ClientOrderID: "aa12",
		Instrument:    instrument.Rose,
		Side:          Buy,
		Price:         10.00,
		Quantity:      100,
	}

	tests := []struct {
		name    string
		mutate  func(*OrderRequest)
		wantErr error
	}{
		{"valid request", func(r *OrderRequest) {}, nil},
		{"valid at boundaries", func(r *OrderRequest) {
			r.ClientOrderID = "1234567"
			r.Quantity = 1000
		}, nil},
		{"empty client order id", func(r *OrderRequest) { r.ClientOrderID = "" }, ErrInvalidClientOrderID},
		{"client order id too long", func(r *OrderRequest) { r.ClientOrderID = "12345678" }, ErrInvalidClientOrderID},
		{"invalid instrument", func(r *OrderRequest) { r.Instrument = instrument.Invalid }, ErrInvalidInstrument},
		{"side code three", func(r *OrderRequest) { r.Side = 3 }, ErrInvalidSide},
		{"side code zero", func(r *OrderRequest) { r.Side = 0 }, ErrInvalidSide},
		{"zero price", func(r *OrderRequest) { r.Price = 0 }, ErrInvalidPrice},
		{"negative price", func(r *OrderRequest) { r.Price = -1.50 }, ErrInvalidPrice},
		{"quantity below minimum", func(r *OrderRequest) { r.Quantity = 5 }, ErrInvalidQuantity},
		{"quantity above maximum", func(r *OrderRequest) { r.Quantity = 1010 }, ErrInvalidQuantity},
		{"quantity not multiple of ten", func(r *OrderRequest) { r.Quantity = 15 }, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := Validate(req); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// Rules are checked in fixed precedence order: a request failing several
// rules reports only the earliest one.
func TestValidatePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		req     OrderRequest
		wantErr error
	}{
		{
			name:    "everything wrong reports client id first",
			req:     OrderRequest{ClientOrderID: "", Instrument: instrument.Invalid, Side: 9, Price: -1, Quantity: 3},
			wantErr: ErrInvalidClientOrderID,
		},
		{
			name:    "bad instrument before bad side",
			req:     OrderRequest{ClientOrderID: "ok", Instrument: instrument.Invalid, Side: 9, Price: -1, Quantity: 3},
			wantErr: ErrInvalidInstrument,
		},
		{
			name:    "bad side before bad price",
			req:     OrderRequest{ClientOrderID: "ok", Instrument: instrument.Lotus, Side: 9, Price: -1, Quantity: 3},
			wantErr: ErrInvalidSide,
		},
		{
			name:    "bad price before bad quantity",
			req:     OrderRequest{ClientOrderID: "ok", Instrument: instrument.Lotus, Side: Sell, Price: -1, Quantity: 3},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.req); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
