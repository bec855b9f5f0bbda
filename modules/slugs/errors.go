package slugs

import "errors"

var (
	ErrInvalidScope       = errors.New("invalid scope")
	ErrReserveUnsupported = errors.New("store does not support reservations")
)
