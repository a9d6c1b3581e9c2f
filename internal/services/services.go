package services

import (
	"errors"
	"math/rand"

	"blog-backend/internal/errs"
	"blog-backend/internal/repositories"
	"blog-backend/internal/utils"
)

// validate runs struct tag validation and converts failures to a validation error.
func validate(req any) error {
	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		return errs.Validation("invalid input", fields)
	}
	return nil
}

// storeError classifies a repository error. ErrNotFound becomes notFound, anything
// else is internal.
func storeError(err error, notFound string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return errs.NotFound(notFound)
	}
	return errs.Internal(err)
}

// Shuffler reorders n elements in place through swap.
type Shuffler func(n int, swap func(i, j int))

// RandomShuffle is the default Shuffler.
func RandomShuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// NoShuffle keeps the order as fetched.
func NoShuffle(int, func(i, j int)) {}
