package exchange

import "github.com/petalex/engine/pkg/exchange/instrument"

// Side uses the wire codes from the input feed: 1 = buy, 2 = sell. Requests
// may carry any other code; the validator rejects those before they reach a
// book, so typed values past validation are always Buy or Sell.
type Side int8

const (
	Buy  Side = 1
	Sell Side = 2
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "Unknown"
	}
}

// Status is the execution report status vocabulary.
type Status int8

const (
	StatusNew Status = iota
	StatusReject
	StatusFill
	StatusPartialFill
)

func (st Status) String() string {
	switch st {
	case StatusNew:
		return "New"
	case StatusReject:
		return "Reject"
	case StatusFill:
		return "Fill"
	case StatusPartialFill:
		return "PFill"
	default:
		return "Unknown"
	}
}

// OrderRequest carries the raw fields of one order submission, exactly as the
// driver parsed them. Nothing here is sanitized: the side code and instrument
// may be invalid, and the validator decides.
type OrderRequest struct {
	ClientOrderID string
	Instrument    instrument.Instrument
	Side          Side
	Price         float64
	Quantity      int64
}

// Order is an accepted order. Remaining is decremented in place while the
// order crosses; an order leaves its book the moment Remaining hits zero.
type Order struct {
	ClientOrderID string
	OrderID       uint64
	Instrument    instrument.Instrument
	Side          Side
	Price         float64
	Remaining     int64
}

// ExecutionReport is one element of the output stream. Quantity is the
// matched amount for Fill/PartialFill match events and the remaining amount
// for New and terminal drain reports. OrderID is zero for rejects, which
// never consume an id. Reason is set only on rejects.
type ExecutionReport struct {
	ClientOrderID string                `json:"clientOrderId"`
	OrderID       uint64                `json:"orderId"`
	Instrument    instrument.Instrument `json:"instrument"`
	Side          Side                  `json:"side"`
	Status        Status                `json:"status"`
	Quantity      int64                 `json:"quantity"`
	Price         float64               `json:"price"`
	Reason        string                `json:"reason,omitempty"`
}

// ReportSink receives execution reports in strict emission order. The engine
// calls Write synchronously under its own lock, so implementations never see
// concurrent calls and must not reorder or drop reports.
type ReportSink interface {
	Write(rep *ExecutionReport) error
}

// PriceLevel is one aggregated row of a depth view.
type PriceLevel struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Orders   int     `json:"orders"`
}
