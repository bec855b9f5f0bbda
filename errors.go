package sluggable

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("sluggable: invalid configuration")

	// ErrNotRegistered is returned when a record's type has no registered configuration.
	ErrNotRegistered = errors.New("sluggable: record type is not registered")

	// ErrAlreadyRegistered is returned when a type or kind is registered twice.
	ErrAlreadyRegistered = errors.New("sluggable: record type is already registered")

	// ErrNilRecord is returned when a nil record or nil pointer is passed in.
	ErrNilRecord = errors.New("sluggable: nil record")

	// ErrNilStore is returned when uniqueness is resolved without a store.
	ErrNilStore = errors.New("sluggable: nil store")

	// ErrStore wraps errors returned by the existence-check collaborator.
	ErrStore = errors.New("sluggable: existence check failed")

	// ErrAttribute wraps failures to read or write a record attribute at runtime.
	ErrAttribute = errors.New("sluggable: attribute access failed")

	// ErrOptionsFile is returned when a static options file cannot be read or decoded.
	ErrOptionsFile = errors.New("sluggable: invalid options file")

	// ErrInvalidTransition is returned when the assignment lifecycle is driven out of order.
	ErrInvalidTransition = errors.New("sluggable: invalid lifecycle transition")
)

// ConfigurationError is raised once, while a record type is configured, for
// unreadable source attributes, unwritable target fields and unsupported
// options. It is fatal and never retried.
type ConfigurationError struct {
	Kind      string
	Attribute string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.Attribute == "" {
		return fmt.Sprintf("sluggable: %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("sluggable: %s.%s: %s", e.Kind, e.Attribute, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configError(kind, attribute, reason string) error {
	return &ConfigurationError{Kind: kind, Attribute: attribute, Reason: reason}
}

func attributeError(kind, attribute string, err error) error {
	return errors.Join(ErrAttribute, fmt.Errorf("%s.%s: %w", kind, attribute, err))
}
