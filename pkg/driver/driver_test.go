package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petalex/engine/pkg/exchange"
	"github.com/petalex/engine/pkg/exchange/instrument"
	"github.com/petalex/engine/pkg/report"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    exchange.OrderRequest
		wantErr bool
	}{
		{
			name: "well formed",
			line: "aa12,Rose,1,10.50,100",
			want: exchange.OrderRequest{
				ClientOrderID: "aa12",
				Instrument:    instrument.Rose,
				Side:          exchange.Buy,
				Price:         10.50,
				Quantity:      100,
			},
		},
		{
			name: "whitespace trimmed",
			line: " aa12 , Tulip , 2 , 9.00 , 50 ",
			want: exchange.OrderRequest{
				ClientOrderID: "aa12",
				Instrument:    instrument.Tulip,
				Side:          exchange.Sell,
				Price:         9.00,
				Quantity:      50,
			},
		},
		{
			name: "unknown instrument is not malformed",
			line: "aa12,Daisy,1,10.50,100",
			want: exchange.OrderRequest{
				ClientOrderID: "aa12",
				Instrument:    instrument.Invalid,
				Side:          exchange.Buy,
				Price:         10.50,
				Quantity:      100,
			},
		},
		{
			name: "out of range side code does not alias",
			line: "aa12,Rose,300,10.50,100",
			want: exchange.OrderRequest{
				ClientOrderID: "aa12",
				Instrument:    instrument.Rose,
				Side:          0,
				Price:         10.50,
				Quantity:      100,
			},
		},
		{name: "too few fields", line: "aa12,Rose,1,10.50", wantErr: true},
		{name: "unparsable side", line: "aa12,Rose,buy,10.50,100", wantErr: true},
		{name: "unparsable price", line: "aa12,Rose,1,ten,100", wantErr: true},
		{name: "unparsable quantity", line: "aa12,Rose,1,10.50,many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRequest(%q) succeeded, want error", tt.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest(%q): %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseRequest(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func writeOrderFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write order file: %v", err)
	}
	return path
}

func TestRunFeedsEngineAndDrains(t *testing.T) {
	input := "Client Order ID,Instrument,Side,Price,Quantity\n" +
		"s1,Rose,2,9.50,50\n" +
		"b1,Rose,1,10.00,100\n" +
		"\n" +
		"bad,Rose,1,oops,100\n" +
		"x234567890,Rose,1,10.00,100\n"
	path := writeOrderFile(t, input)

	sink := report.NewMemorySink()
	eng := exchange.NewEngine(sink, nil)

	stats, err := New(eng, nil).Run(path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Lines != 4 || stats.Malformed != 1 || stats.Processed != 3 {
		t.Errorf("stats = %+v, want 4 lines, 1 malformed, 3 processed", stats)
	}

	reports := sink.Reports()
	// s1 New; b1 match event (PFill + Fill); long client id Reject; drain
	// emits b1's residual.
	if len(reports) != 5 {
		t.Fatalf("got %d reports, want 5: %+v", len(reports), reports)
	}
	wantStatuses := []exchange.Status{
		exchange.StatusNew,
		exchange.StatusPartialFill,
		exchange.StatusFill,
		exchange.StatusReject,
		exchange.StatusPartialFill,
	}
	for i, st := range wantStatuses {
		if reports[i].Status != st {
			t.Errorf("report %d status = %v, want %v", i, reports[i].Status, st)
		}
	}
	last := reports[4]
	if last.ClientOrderID != "b1" || last.Quantity != 50 || last.Price != 10.00 {
		t.Errorf("terminal report = %+v, want b1 residual 50 @ 10.00", last)
	}
}

func TestFeedDoesNotDrain(t *testing.T) {
	path := writeOrderFile(t, "header\nb1,Rose,1,10.00,100\n")

	sink := report.NewMemorySink()
	eng := exchange.NewEngine(sink, nil)

	if _, err := New(eng, nil).Feed(path); err != nil {
		t.Fatalf("Feed: %v", err)
	}

	if n := len(sink.Reports()); n != 1 {
		t.Fatalf("got %d reports, want only the New", n)
	}
	bids, _ := eng.Depth(instrument.Rose)
	if len(bids) != 1 {
		t.Errorf("order should still be resting after Feed, depth %+v", bids)
	}
}

func TestFeedMissingFile(t *testing.T) {
	sink := report.NewMemorySink()
	eng := exchange.NewEngine(sink, nil)
	if _, err := New(eng, nil).Feed(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("Feed on a missing file should fail")
	}
}
