// Package exchange implements the deterministic price-time-priority matching
// core: validation, the two-sided crossing algorithm, and execution report
// emission.
package exchange

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/petalex/engine/pkg/exchange/instrument"
)

type bookPair struct {
	bids *sideQueue
	asks *sideQueue
}

// Engine owns one book pair per instrument and the process-wide order id
// counter. All mutation goes through Process and Drain under a single lock;
// no other component touches book state.
type Engine struct {
	mu     sync.Mutex
	books  map[instrument.Instrument]*bookPair
	nextID uint64
	sink   ReportSink
	log    *zap.SugaredLogger
}

// NewEngine creates an engine emitting to sink. The sink is called
// synchronously, so the report stream leaves in exact emission order.
func NewEngine(sink ReportSink, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{
		books: make(map[instrument.Instrument]*bookPair),
		sink:  sink,
		log:   logger,
	}
}

func (e *Engine) book(inst instrument.Instrument) *bookPair {
	b, ok := e.books[inst]
	if !ok {
		b = &bookPair{bids: newSideQueue(true), asks: newSideQueue(false)}
		e.books[inst] = b
	}
	return b
}

// Process runs one request through validation and the crossing loop,
// emitting reports as it goes. The returned error is a sink failure only;
// business rejections are reports, not errors.
func (e *Engine) Process(req OrderRequest) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := Validate(req); err != nil {
		e.log.Debugw("order_rejected",
			"client_order_id", req.ClientOrderID,
			"reason", err.Error())
		return e.sink.Write(&ExecutionReport{
			ClientOrderID: req.ClientOrderID,
			Instrument:    req.Instrument,
			Side:          req.Side,
			Status:        StatusReject,
			Quantity:      req.Quantity,
			Price:         req.Price,
			Reason:        err.Error(),
		})
	}

	e.nextID++
	o := &Order{
		ClientOrderID: req.ClientOrderID,
		OrderID:       e.nextID,
		Instrument:    req.Instrument,
		Side:          req.Side,
		Price:         req.Price,
		Remaining:     req.Quantity,
	}

	book := e.book(o.Instrument)
	opp, own := book.asks, book.bids
	if o.Side == Sell {
		opp, own = book.bids, book.asks
	}

	matched := false
	for o.Remaining > 0 {
		maker := opp.peek()
		if maker == nil || !marketable(o, maker) {
			break
		}
		matched = true

		qty := min(o.Remaining, maker.Remaining)
		px := maker.Price // price improvement: the resting order sets the trade price
		o.Remaining -= qty
		maker.Remaining -= qty

		if err := e.emitMatch(o, maker, qty, px); err != nil {
			return err
		}
		if maker.Remaining == 0 {
			opp.pop()
		}
	}

	if o.Remaining > 0 {
		if !matched {
			if err := e.sink.Write(&ExecutionReport{
				ClientOrderID: o.ClientOrderID,
				OrderID:       o.OrderID,
				Instrument:    o.Instrument,
				Side:          o.Side,
				Status:        StatusNew,
				Quantity:      o.Remaining,
				Price:         o.Price,
			}); err != nil {
				return err
			}
		}
		own.push(o)
	}
	return nil
}

// marketable reports whether the incoming order crosses the best resting
// order on the opposite side.
func marketable(incoming, resting *Order) bool {
	if incoming.Side == Buy {
		return resting.Price <= incoming.Price
	}
	return resting.Price >= incoming.Price
}

// emitMatch writes the two reports of one match event, buy side first, the
// order the downstream consumers expect.
func (e *Engine) emitMatch(taker, maker *Order, qty int64, px float64) error {
	takerRep := matchReport(taker, qty, px)
	makerRep := matchReport(maker, qty, px)
	first, second := takerRep, makerRep
	if taker.Side == Sell {
		first, second = makerRep, takerRep
	}
	if err := e.sink.Write(first); err != nil {
		return err
	}
	return e.sink.Write(second)
}

func matchReport(o *Order, qty int64, px float64) *ExecutionReport {
	st := StatusPartialFill
	if o.Remaining == 0 {
		st = StatusFill
	}
	return &ExecutionReport{
		ClientOrderID: o.ClientOrderID,
		OrderID:       o.OrderID,
		Instrument:    o.Instrument,
		Side:          o.Side,
		Status:        st,
		Quantity:      qty,
		Price:         px,
	}
}

// Drain empties every book at end of run, emitting one terminal report per
// resting order. Instruments go in canonical order, bids before asks, each
// side best-priority-first, so the tail of the stream is deterministic.
func (e *Engine) Drain() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	drained := 0
	for _, inst := range instrument.List() {
		book, ok := e.books[inst]
		if !ok {
			continue
		}
		for _, q := range []*sideQueue{book.bids, book.asks} {
			for {
				o := q.pop()
				if o == nil {
					break
				}
				drained++
				if err := e.sink.Write(&ExecutionReport{
					ClientOrderID: o.ClientOrderID,
					OrderID:       o.OrderID,
					Instrument:    o.Instrument,
					Side:          o.Side,
					Status:        StatusPartialFill,
					Quantity:      o.Remaining,
					Price:         o.Price,
				}); err != nil {
					return err
				}
			}
		}
	}
	e.log.Infow("book_drained", "resting_orders", drained)
	return nil
}

// Depth returns the aggregated price levels of one instrument's book, bids
// high to low and asks low to high.
func (e *Engine) Depth(inst instrument.Instrument) (bids, asks []PriceLevel) {
	e.mu.Lock()
	defer e.mu.Unlock()

	book, ok := e.books[inst]
	if !ok {
		return nil, nil
	}
	return levels(book.bids, true), levels(book.asks, false)
}

func levels(q *sideQueue, bids bool) []PriceLevel {
	agg := make(map[float64]*PriceLevel)
	for _, o := range q.orders {
		lvl, ok := agg[o.Price]
		if !ok {
			lvl = &PriceLevel{Price: o.Price}
			agg[o.Price] = lvl
		}
		lvl.Quantity += o.Remaining
		lvl.Orders++
	}

	out := make([]PriceLevel, 0, len(agg))
	for _, lvl := range agg {
		out = append(out, *lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		if bids {
			return out[i].Price > out[j].Price
		}
		return out[i].Price < out[j].Price
	})
	return out
}

// LastOrderID returns the most recently assigned order id.
func (e *Engine) LastOrderID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextID
}

func min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
