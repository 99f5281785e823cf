package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDomain indicates that the provided domain is invalid
	ErrInvalidDomain = errors.New("invalid domain format")

	// ErrFetchTimeout indicates that fetching the page timed out
	ErrFetchTimeout = errors.New("timeout while fetching page")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrCacheUnavailable indicates that cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrJobNotFound indicates that no job exists for the given id
	ErrJobNotFound = errors.New("job not found")

	// ErrQueueFull indicates that the bounded job queue cannot accept more work
	ErrQueueFull = errors.New("job queue is full")

	// ErrQueueStopped indicates a submission after the worker pool shut down
	ErrQueueStopped = errors.New("job queue is not running")
)

// DomainError represents an error specific to a domain operation
type DomainError struct {
	Domain  string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("domain %s: %s: %v", e.Domain, e.Message, e.Err)
	}
	return fmt.Sprintf("domain %s: %s", e.Domain, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain-specific error
func NewDomainError(domain, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Message: message,
		Err:     err,
	}
}
