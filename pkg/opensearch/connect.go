package opensearch

import (
	"context"
	"errors"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2"
)

// New creates a client for cfg.Addresses and checks that the cluster answers
// the Info API before returning it.
func New(ctx context.Context, cfg Config) (*opensearch.Client, error) {
	if len(cfg.Addresses) == 0 {
		return nil, ErrNoAddresses
	}

	client, err := opensearch.NewClient(opensearch.Config{
		Addresses:     cfg.Addresses,
		Username:      cfg.Username,
		Password:      cfg.Password,
		MaxRetries:    cfg.MaxRetries,
		DisableRetry:  cfg.DisableRetry,
		RetryOnStatus: []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests},
	})
	if err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}

	if err := Healthcheck(client)(ctx); err != nil {
		return nil, errors.Join(ErrConnectionFailed, err)
	}
	return client, nil
}

// Open connects and returns a Store configured from cfg together with its
// readiness check.
func Open(ctx context.Context, cfg Config, opts ...StoreOption) (*Store, func(context.Context) error, error) {
	client, err := New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return NewStore(client, append(cfg.StoreOptions(), opts...)...), Healthcheck(client), nil
}
