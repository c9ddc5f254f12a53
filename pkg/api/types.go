package api

import "github.com/petalex/engine/pkg/exchange"

// BookSnapshot is the aggregated depth of one instrument's book.
type BookSnapshot struct {
	Instrument string                `json:"instrument"`
	Bids       []exchange.PriceLevel `json:"bids"` // sorted high to low
	Asks       []exchange.PriceLevel `json:"asks"` // sorted low to high
	Timestamp  int64                 `json:"timestamp"`
}

// ReportInfo is the readable rendering of an execution report.
type ReportInfo struct {
	ClientOrderID string  `json:"clientOrderId"`
	OrderID       uint64  `json:"orderId"`
	Instrument    string  `json:"instrument"`
	Side          int8    `json:"side"`
	Status        string  `json:"status"`
	Quantity      int64   `json:"quantity"`
	Price         float64 `json:"price"`
	Reason        string  `json:"reason,omitempty"`
}

func toReportInfo(rep *exchange.ExecutionReport) ReportInfo {
	return ReportInfo{
		ClientOrderID: rep.ClientOrderID,
		OrderID:       rep.OrderID,
		Instrument:    rep.Instrument.String(),
		Side:          int8(rep.Side),
		Status:        rep.Status.String(),
		Quantity:      rep.Quantity,
		Price:         rep.Price,
		Reason:        rep.Reason,
	}
}

// SubmitOrderRequest is the payload for POST /api/v1/orders.
type SubmitOrderRequest struct {
	ClientOrderID string  `json:"clientOrderId"`
	Instrument    string  `json:"instrument"`
	Side          int8    `json:"side"` // 1 = buy, 2 = sell
	Price         float64 `json:"price"`
	Quantity      int64   `json:"quantity"`
}

// SubmitOrderResponse acknowledges that a request went through the engine.
// The outcome (New/Reject/fills) is on the report stream.
type SubmitOrderResponse struct {
	Status string `json:"status"`
}

// WSMessage is the envelope for all WebSocket broadcasts.
type WSMessage struct {
	Type string `json:"type"` // "report"
	Data any    `json:"data"`
}

// ErrorResponse is returned for all errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
