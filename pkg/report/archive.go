package report

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/petalex/engine/pkg/exchange"
)

// Archive persists the report stream in pebble, keyed by emission sequence,
// so consumers can page through a run's output after the fact. Book state is
// never stored here; the report stream is the only durable output.
type Archive struct {
	db  *pebble.DB
	seq uint64
}

// keys: r:<8-byte-big-endian-seq>
func kReport(seq uint64) []byte {
	key := make([]byte, 2+8)
	copy(key, "r:")
	binary.BigEndian.PutUint64(key[2:], seq)
	return key
}

func keyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func OpenArchive(dir string) (*Archive, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open report archive: %w", err)
	}
	a := &Archive{db: db}
	a.seq = a.lastSeq()
	return a, nil
}

// lastSeq finds the highest stored sequence so appends continue after it.
func (a *Archive) lastSeq() uint64 {
	prefix := []byte("r:")
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return 0
	}
	defer iter.Close()

	if !iter.Last() {
		return 0
	}
	return binary.BigEndian.Uint64(iter.Key()[2:])
}

func (a *Archive) Write(rep *exchange.ExecutionReport) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	a.seq++
	if err := a.db.Set(kReport(a.seq), data, pebble.NoSync); err != nil {
		return fmt.Errorf("archive report: %w", err)
	}
	return nil
}

// Recent returns up to limit reports, newest first.
func (a *Archive) Recent(limit int) ([]exchange.ExecutionReport, error) {
	prefix := []byte("r:")
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: keyUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var reports []exchange.ExecutionReport
	for iter.Last(); iter.Valid() && len(reports) < limit; iter.Prev() {
		var rep exchange.ExecutionReport
		if err := json.Unmarshal(iter.Value(), &rep); err != nil {
			continue
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (a *Archive) Close() error {
	if err := a.db.Flush(); err != nil {
		a.db.Close()
		return err
	}
	return a.db.Close()
}
