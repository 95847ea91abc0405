// file: internal/testutil/fake_source.go
// version: 1.0.0
// guid: 7e2d9b4f-1c58-4a36-b0d7-4f9e8c2a6b13

package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lmorel/bibsearch/internal/sources"
)

// FakeSource is a scriptable Source for strategy and service tests.
// Set Err to force a failure, Delay to simulate a slow catalog.
type FakeSource struct {
	SourceName   string
	ISBNRecord   *sources.Record
	TitleRecords []sources.Record
	Err          error
	Delay        time.Duration

	mu    sync.Mutex
	calls int
}

var _ sources.Source = (*FakeSource)(nil)

func (f *FakeSource) Name() string {
	return f.SourceName
}

// Calls reports how many fetches were issued against this source.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *FakeSource) FetchByISBN(ctx context.Context, isbn string) (*sources.Record, error) {
	if err := f.begin(ctx); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if f.ISBNRecord == nil {
		return nil, fmt.Errorf("%s: isbn %s: %w", f.SourceName, isbn, sources.ErrNotFound)
	}
	rec := *f.ISBNRecord
	return &rec, nil
}

func (f *FakeSource) FetchByTitleAuthor(ctx context.Context, title, author string) ([]sources.Record, error) {
	if err := f.begin(ctx); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.TitleRecords) == 0 {
		return nil, fmt.Errorf("%s: title %q: %w", f.SourceName, title, sources.ErrNotFound)
	}
	out := make([]sources.Record, len(f.TitleRecords))
	copy(out, f.TitleRecords)
	return out, nil
}

func (f *FakeSource) begin(ctx context.Context) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(f.Delay):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w: %v", f.SourceName, sources.ErrSourceUnavailable, ctx.Err())
	}
}
