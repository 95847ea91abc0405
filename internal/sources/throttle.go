// file: internal/sources/throttle.go
// version: 1.0.0
// guid: 5d1c7e9a-4f28-4b06-a3d5-8e0b2c6f9a41

package sources

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled wraps src with a client-side token bucket so outbound
// traffic stays under the source's politeness limits. A non-positive
// rps returns src unchanged.
func Throttled(src Source, rps float64, burst int) Source {
	if rps <= 0 {
		return src
	}
	if burst < 1 {
		burst = 1
	}
	return &throttledSource{
		src:     src,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type throttledSource struct {
	src     Source
	limiter *rate.Limiter
}

func (t *throttledSource) Name() string {
	return t.src.Name()
}

func (t *throttledSource) FetchByISBN(ctx context.Context, isbn string) (*Record, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: throttle: %w: %v", t.src.Name(), ErrSourceUnavailable, err)
	}
	return t.src.FetchByISBN(ctx, isbn)
}

func (t *throttledSource) FetchByTitleAuthor(ctx context.Context, title, author string) ([]Record, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: throttle: %w: %v", t.src.Name(), ErrSourceUnavailable, err)
	}
	return t.src.FetchByTitleAuthor(ctx, title, author)
}
