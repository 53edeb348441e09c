package recordcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/coldtrace/foodtrace/internal/domain/observation"
)

// ValkeyStore caches product histories in a Valkey-compatible database so
// repeated lookups skip the linear chain scan.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a cache backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "foodtrace"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, productID string) (observation.ProductHistory, bool, error) {
	if productID == "" {
		return observation.ProductHistory{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.historyKey(productID)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return observation.ProductHistory{}, false, nil
		}
		return observation.ProductHistory{}, false, err
	}
	var history observation.ProductHistory
	if err := json.Unmarshal([]byte(payload), &history); err != nil {
		return observation.ProductHistory{}, false, err
	}
	return history, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, history observation.ProductHistory, ttl time.Duration) error {
	payload, err := json.Marshal(history)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.historyKey(history.ProductID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Invalidate(ctx context.Context, productID string) error {
	if productID == "" {
		return nil
	}
	cmd := s.client.B().Del().Key(s.historyKey(productID)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) historyKey(productID string) string {
	return s.prefix + ":history:" + productID
}

var _ observation.HistoryCache = (*ValkeyStore)(nil)
