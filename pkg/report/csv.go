package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/petalex/engine/pkg/exchange"
)

var csvHeader = []string{"Client Order ID", "Order ID", "Instrument", "Side", "Exec Status", "Quantity", "Price", "Reason"}

// CSVSink renders the report stream in the exchange's file format: one row
// per report, order ids as ord<N> (blank for rejects, which never consume
// an id), prices with two decimals, the reason column only when set.
type CSVSink struct {
	w *csv.Writer
	c io.Closer
}

// NewCSVSink creates the output file, truncating any previous run, and
// writes the header row.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report file: %w", err)
	}
	s := NewCSVWriter(f)
	s.c = f
	return s, nil
}

// NewCSVWriter writes the same format to an arbitrary writer. The header
// goes out immediately.
func NewCSVWriter(w io.Writer) *CSVSink {
	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	return &CSVSink{w: cw}
}

func (s *CSVSink) Write(rep *exchange.ExecutionReport) error {
	orderID := ""
	if rep.OrderID != 0 {
		orderID = fmt.Sprintf("ord%d", rep.OrderID)
	}
	record := []string{
		rep.ClientOrderID,
		orderID,
		rep.Instrument.String(),
		strconv.Itoa(int(rep.Side)),
		rep.Status.String(),
		strconv.FormatInt(rep.Quantity, 10),
		strconv.FormatFloat(rep.Price, 'f', 2, 64),
	}
	if rep.Reason != "" {
		record = append(record, rep.Reason)
	}
	if err := s.w.Write(record); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return err
	}
	if s.c != nil {
		return s.c.Close()
	}
	return nil
}
