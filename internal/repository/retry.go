// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"net"

	"twosides/internal/models"
	"twosides/internal/observability"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// maxStoreAttempts bounds retries of transient store failures before they
// surface to the caller as STORE_UNAVAILABLE.
const maxStoreAttempts = 3

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isTransient(err error) bool {
	if isSerializationFailure(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// withRetry runs op with bounded retries on transient store failures.
// Domain errors pass through untouched and immediately. Transient errors that
// survive all attempts surface as ConcurrentConflict (serialization) or
// StoreUnavailable (I/O), both marked retryable for the caller.
func withRetry[T any](ctx context.Context, operation string, op func() (T, error)) (T, error) {
	result, err := backoff.Retry(ctx, func() (T, error) {
		v, opErr := op()
		if opErr == nil {
			return v, nil
		}
		var appErr *models.AppError
		if errors.As(opErr, &appErr) && !appErr.Retryable() {
			return v, backoff.Permanent(opErr)
		}
		if !isTransient(opErr) && !models.IsCode(opErr, models.CodeConcurrentConflict) {
			return v, backoff.Permanent(opErr)
		}
		observability.StoreRetries.WithLabelValues(operation).Inc()
		return v, opErr
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxStoreAttempts))
	if err == nil {
		return result, nil
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return result, err
	}
	if isSerializationFailure(err) {
		return result, models.NewConcurrentConflictError(err)
	}
	if isTransient(err) {
		return result, models.NewStoreUnavailableError(err)
	}
	return result, models.NewInternalError(err)
}
