package opensearch

import (
	"context"
	"errors"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// Healthcheck returns a function suitable for liveness/readiness probes.
// It calls the Info API to verify cluster connectivity; an error response
// counts as unhealthy.
func Healthcheck(transport opensearchapi.Transport) func(context.Context) error {
	return func(ctx context.Context) error {
		resp, err := opensearchapi.InfoRequest{ErrorTrace: true}.Do(ctx, transport)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return errors.Join(ErrHealthcheckFailed, errors.New(resp.String()))
		}
		return nil
	}
}
