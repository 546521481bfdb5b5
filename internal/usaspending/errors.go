package usaspending

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("not found")
	// ErrNoData matches every *NoDataError.
	ErrNoData = errors.New("no data")
)

// NotFoundError reports a reference-list lookup (agency, state) that found no match.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status=%d body=%q", e.Method, e.URL, e.StatusCode, e.Body)
}

type NoDataError struct {
	FiscalYear int
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data for FY %d", e.FiscalYear)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoData }
