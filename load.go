package lexicon

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// EntryReader yields lexicon entries one-by-one.
// It should return io.EOF when the stream is exhausted.
//
// Parsing concrete lexicon file formats is outside of this package; adapters
// for such formats implement EntryReader and feed the store through Load.
type EntryReader interface {
	Next() (Entry, error)
}

// Load adds all entries from reader to partition t. It stops at the first
// error, returning the number of entries added so far.
func (s *Store) Load(t int, reader EntryReader) (int, error) {
	return s.load(context.Background(), t, reader)
}

// LoadList adds a list of entries to partition t. It stops at the first
// invalid entry, returning the number of entries added so far.
func (s *Store) LoadList(t int, entries []Entry) (int, error) {
	for n, e := range entries {
		if _, err := s.Add(t, e); err != nil {
			return n, fmt.Errorf("entry #%d: %w", n+1, err)
		}
	}
	return len(entries), nil
}

// LoadPartitions loads several partitions in parallel, one goroutine per
// partition. The first failing reader cancels the others; cancelling ctx
// stops all of them. The number of entries added across all partitions is
// returned even on error.
func (s *Store) LoadPartitions(ctx context.Context, readers map[int]EntryReader) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	var total atomic.Int64
	for t, reader := range readers {
		g.Go(func() error {
			n, err := s.load(ctx, t, reader)
			total.Add(int64(n))
			return err
		})
	}
	err := g.Wait()
	return int(total.Load()), err
}

func (s *Store) load(ctx context.Context, t int, reader EntryReader) (n int, err error) {
	for {
		if err = ctx.Err(); err != nil {
			return n, fmt.Errorf("loading partition %d: %w", t, err)
		}
		var e Entry
		e, err = reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("loading partition %d, entry #%d: %w", t, n+1, err)
		}
		if _, err = s.Add(t, e); err != nil {
			return n, fmt.Errorf("loading partition %d, entry #%d: %w", t, n+1, err)
		}
		n++
	}
	stats := s.Stats(t)
	tracer().Infof("lexicon %s: loaded %d entries into partition %d backend=%s entries=%d tombstones=%d fill=%.2f",
		s.id, n, t, stats.Backend, stats.Entries, stats.Tombstones, stats.FillRatio())
	return n, nil
}
