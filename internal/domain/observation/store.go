package observation

import (
	"context"
	"time"
)

// HistoryCache caches product-history lookups. The ledger stays the source
// of truth; entries are invalidated whenever an append touches the product.
type HistoryCache interface {
	Get(ctx context.Context, productID string) (ProductHistory, bool, error)
	Save(ctx context.Context, history ProductHistory, ttl time.Duration) error
	Invalidate(ctx context.Context, productID string) error
}
