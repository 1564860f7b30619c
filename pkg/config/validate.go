package config

import (
	"fmt"
	"net"

	"github.com/landchain/titleledger/pkg/identity"
)

// ValidationError represents a single validation error with context.
type ValidationError struct {
	Path    string // e.g., "ledger.admin"
	Message string
	Hint    string
}

func (e ValidationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s; %s", e.Path, e.Message, e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate performs validation of the entire config. It aggregates all errors
// and returns them, allowing the caller to print all issues at once.
func (c *Config) Validate() []error {
	var errs []error
	errs = append(errs, c.validateLedger()...)
	errs = append(errs, c.validateGateway()...)
	return errs
}

func (c *Config) validateLedger() []error {
	var errs []error
	lc := c.Ledger

	if lc.Admin == "" {
		errs = append(errs, ValidationError{
			Path:    "ledger.admin",
			Message: "must not be empty",
			Hint:    "set the deploying identity's hex address",
		})
	} else if _, err := identity.Parse(lc.Admin); err != nil {
		errs = append(errs, ValidationError{
			Path:    "ledger.admin",
			Message: "not a valid hex address",
			Hint:    "expected 0x-prefixed 20-byte hex",
		})
	}

	if lc.VerificationPolicy != "" && !lc.VerificationPolicy.Valid() {
		errs = append(errs, ValidationError{
			Path:    "ledger.verification_policy",
			Message: fmt.Sprintf("unknown policy %q", lc.VerificationPolicy),
			Hint:    `expected "reset" or "carry"`,
		})
	}

	if lc.EventBuffer < 0 {
		errs = append(errs, ValidationError{
			Path:    "ledger.event_buffer",
			Message: "must not be negative",
		})
	}

	return errs
}

func (c *Config) validateGateway() []error {
	var errs []error
	gc := c.Gateway

	if gc.ListenAddr != "" {
		if _, _, err := net.SplitHostPort(gc.ListenAddr); err != nil {
			errs = append(errs, ValidationError{
				Path:    "gateway.listen_addr",
				Message: "invalid host:port",
				Hint:    `e.g. ":6001" or "127.0.0.1:6001"`,
			})
		}
	}

	if gc.RateLimitPerMin < 0 || gc.RateLimitBurst < 0 {
		errs = append(errs, ValidationError{
			Path:    "gateway.rate_limit_per_min",
			Message: "rate limit values must not be negative",
		})
	}
	if gc.RateLimitPerMin > 0 && gc.RateLimitBurst == 0 {
		errs = append(errs, ValidationError{
			Path:    "gateway.rate_limit_burst",
			Message: "burst must be positive when rate limiting is enabled",
		})
	}

	if gc.RequestTimeout < 0 {
		errs = append(errs, ValidationError{
			Path:    "gateway.request_timeout",
			Message: "must not be negative",
		})
	}

	return errs
}
