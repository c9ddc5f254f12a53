package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/petalex/engine/pkg/exchange"
	"github.com/petalex/engine/pkg/exchange/instrument"
)

func TestCSVSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVWriter(&buf)

	reports := []exchange.ExecutionReport{
		{
			ClientOrderID: "b1",
			OrderID:       1,
			Instrument:    instrument.Rose,
			Side:          exchange.Buy,
			Status:        exchange.StatusNew,
			Quantity:      100,
			Price:         10,
		},
		{
			ClientOrderID: "bad",
			Instrument:    instrument.Invalid,
			Side:          3,
			Status:        exchange.StatusReject,
			Quantity:      15,
			Price:         9.5,
			Reason:        "Invalid quantity",
		},
		{
			ClientOrderID: "s1",
			OrderID:       2,
			Instrument:    instrument.Tulip,
			Side:          exchange.Sell,
			Status:        exchange.StatusPartialFill,
			Quantity:      50,
			Price:         9.13,
		},
	}
	for i := range reports {
		if err := sink.Write(&reports[i]); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"Client Order ID,Order ID,Instrument,Side,Exec Status,Quantity,Price,Reason",
		"b1,ord1,Rose,1,New,100,10.00",
		"bad,,Invalid,3,Reject,15,9.50,Invalid quantity",
		"s1,ord2,Tulip,2,PFill,50,9.13",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestMemorySinkRecent(t *testing.T) {
	sink := NewMemorySink()
	for i := 1; i <= 5; i++ {
		sink.Write(&exchange.ExecutionReport{OrderID: uint64(i)})
	}

	recent, err := sink.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].OrderID != 5 || recent[1].OrderID != 4 {
		t.Errorf("Recent(2) = %+v, want newest first [5 4]", recent)
	}

	all, err := sink.Recent(100)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Recent(100) returned %d, want 5", len(all))
	}
}

func TestMultiSinkPreservesOrderAcrossChildren(t *testing.T) {
	a, b := NewMemorySink(), NewMemorySink()
	multi := NewMultiSink(a, b)

	for i := 1; i <= 3; i++ {
		if err := multi.Write(&exchange.ExecutionReport{OrderID: uint64(i)}); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	ra, rb := a.Reports(), b.Reports()
	if len(ra) != 3 || len(rb) != 3 {
		t.Fatalf("children got %d and %d reports, want 3 each", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i].OrderID != rb[i].OrderID {
			t.Errorf("children diverge at %d: %d vs %d", i, ra[i].OrderID, rb[i].OrderID)
		}
	}
}
