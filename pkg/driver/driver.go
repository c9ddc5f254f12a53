// Package driver feeds order requests from a CSV file into the matching
// engine, one at a time, and triggers the end-of-run drain.
package driver

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/petalex/engine/pkg/exchange"
	"github.com/petalex/engine/pkg/exchange/instrument"
)

// Stats summarizes one run of the driver.
type Stats struct {
	Lines     int
	Malformed int
	Processed int
}

type Driver struct {
	eng *exchange.Engine
	log *zap.SugaredLogger
}

func New(eng *exchange.Engine, logger *zap.SugaredLogger) *Driver {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Driver{eng: eng, log: logger}
}

// Run feeds the whole file and drains the books at EOF.
func (d *Driver) Run(path string) (Stats, error) {
	stats, err := d.Feed(path)
	if err != nil {
		return stats, err
	}
	return stats, d.eng.Drain()
}

// Feed processes the file without draining, for callers that keep the engine
// alive after the file ends. The first line is the header and is skipped.
// Lines whose numeric fields do not parse are malformed input: they are
// counted and skipped, and never reach the engine.
func (d *Driver) Feed(path string) (Stats, error) {
	var stats Stats

	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("open order file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		if line == "" {
			continue
		}
		stats.Lines++

		req, err := ParseRequest(line)
		if err != nil {
			stats.Malformed++
			d.log.Debugw("malformed_line_skipped", "line", stats.Lines, "err", err)
			continue
		}
		if err := d.eng.Process(req); err != nil {
			return stats, fmt.Errorf("process line %d: %w", stats.Lines, err)
		}
		stats.Processed++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read order file: %w", err)
	}

	d.log.Infow("order_file_fed",
		"lines", stats.Lines,
		"malformed", stats.Malformed,
		"processed", stats.Processed)
	return stats, nil
}

// ParseRequest splits one CSV line into a raw order request. Only structural
// and numeric-parse failures are errors here; out-of-range values and
// unknown instrument labels become typed values the validator rejects.
func ParseRequest(line string) (exchange.OrderRequest, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return exchange.OrderRequest{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	side, err := strconv.Atoi(fields[2])
	if err != nil {
		return exchange.OrderRequest{}, fmt.Errorf("side %q: %w", fields[2], err)
	}
	if side < 0 || side > 127 {
		// out-of-range codes must not alias onto Buy/Sell when narrowed
		side = 0
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return exchange.OrderRequest{}, fmt.Errorf("price %q: %w", fields[3], err)
	}
	qty, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return exchange.OrderRequest{}, fmt.Errorf("quantity %q: %w", fields[4], err)
	}

	return exchange.OrderRequest{
		ClientOrderID: fields[0],
		Instrument:    instrument.FromLabel(fields[1]),
		Side:          exchange.Side(side),
		Price:         price,
		Quantity:      qty,
	}, nil
}
