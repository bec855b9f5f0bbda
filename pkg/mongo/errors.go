package mongo

import "errors"

var (
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
	ErrInvalidQuery           = errors.New("invalid slug query")
	ErrQueryFailed            = errors.New("mongo existence query failed")
)
