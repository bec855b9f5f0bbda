package opensearch

import "errors"

var (
	// ErrNoAddresses is returned by New when Config.Addresses is empty.
	ErrNoAddresses = errors.New("opensearch addresses are empty")

	// ErrConnectionFailed indicates the OpenSearch client could not be created
	// due to configuration or network issues. Use errors.Is() to check.
	ErrConnectionFailed = errors.New("opensearch connection failed")

	// ErrHealthcheckFailed indicates the cluster is unreachable or unhealthy.
	// Returned by both New() during initialization and Healthcheck() during monitoring.
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")

	// ErrInvalidQuery is returned for a query without fields.
	ErrInvalidQuery = errors.New("invalid slug query")

	// ErrQueryFailed wraps transport errors and error responses of the _count API.
	ErrQueryFailed = errors.New("opensearch slug query failed")
)
