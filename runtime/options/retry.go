package options

import (
	"time"

	"github.com/conduit-lang/sugar/runtime/metadata"
)

// RetryParams are retry settings given explicitly by the caller. Zero values
// are unset and fall back to the declared retry policy.
type RetryParams struct {
	// Attempts is the maximum number of attempts, 0 means unlimited
	Attempts int
	// InitInterval is the backoff before the first retry
	InitInterval time.Duration
	// MaxInterval caps the backoff between retries
	MaxInterval time.Duration
	// Backoff is the interval multiplier. Values below 1.0 are ignored.
	Backoff float64
	// NonRetryables are error types that stop retrying
	NonRetryables []string
}

// RetryOptions is the effective retry configuration.
type RetryOptions struct {
	MaximumAttempts        int           `json:"maximum_attempts,omitempty"`
	InitialInterval        time.Duration `json:"initial_interval,omitempty"`
	MaximumInterval        time.Duration `json:"maximum_interval,omitempty"`
	BackoffCoefficient     float64       `json:"backoff_coefficient,omitempty"`
	NonRetryableErrorTypes []string      `json:"non_retryable_error_types,omitempty"`
}

// IsZero reports whether no retry setting is present.
func (o RetryOptions) IsZero() bool {
	return o.MaximumAttempts == 0 &&
		o.InitialInterval == 0 &&
		o.MaximumInterval == 0 &&
		o.BackoffCoefficient == 0 &&
		len(o.NonRetryableErrorTypes) == 0
}

// Retry builds retry options from explicit params, falling back field by
// field to policy. A nil policy leaves only the explicit params.
func Retry(params RetryParams, policy *metadata.RetryPolicy) RetryOptions {
	var declared metadata.RetryPolicy
	if policy != nil {
		declared = *policy
	}

	opts := RetryOptions{
		MaximumAttempts: firstNonZero(params.Attempts, declared.Attempts),
		InitialInterval: firstNonZero(params.InitInterval, declared.InitInterval),
		MaximumInterval: firstNonZero(params.MaxInterval, declared.MaxInterval),
	}

	switch {
	case params.Backoff >= 1.0:
		opts.BackoffCoefficient = params.Backoff
	case declared.Backoff >= 1.0:
		opts.BackoffCoefficient = declared.Backoff
	}

	nonRetryables := params.NonRetryables
	if len(nonRetryables) == 0 {
		nonRetryables = declared.NonRetryables
	}
	if len(nonRetryables) > 0 {
		opts.NonRetryableErrorTypes = append([]string(nil), nonRetryables...)
	}

	return opts
}

func firstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
