package utils

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// ErrContractViolation marks a broken precondition of a caller. It is fatal
// unless the caller explicitly checks for it with errors.Is.
var ErrContractViolation = errors.New("contract violation")

// Violation returns an error wrapping ErrContractViolation.
func Violation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// ArgMax returns the index of the first maximum, or -1 for an empty slice.
func ArgMax[T constraints.Ordered](slice []T) int {
	maxIndex := -1
	for i, v := range slice {
		if maxIndex == -1 || v > slice[maxIndex] {
			maxIndex = i
		}
	}
	return maxIndex
}
