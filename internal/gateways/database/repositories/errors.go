package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/oldgods/nmibot/internal/domain/onboarding"
)

// RepositoryError represents a repository-level error
type RepositoryError struct {
	Operation string
	Entity    string
	Err       error
}

func (re *RepositoryError) Error() string {
	return fmt.Sprintf("repository error during %s for %s: %v", re.Operation, re.Entity, re.Err)
}

func (re *RepositoryError) Unwrap() error {
	return re.Err
}

// NotFoundError is returned when no row matches a lookup.
// It matches onboarding.ErrNotFound with errors.Is.
type NotFoundError struct {
	Entity string
	Key    string
	ID     any
}

func (nfe *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %v not found", nfe.Entity, nfe.Key, nfe.ID)
}

func (nfe *NotFoundError) Is(target error) bool {
	return target == onboarding.ErrNotFound
}

func handleError(operation, entity, key string, id any, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Entity: entity, Key: key, ID: id}
	}
	return &RepositoryError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
