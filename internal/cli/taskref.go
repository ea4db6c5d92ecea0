package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/idilsaglam/dash/internal/model"
)

// Task reference errors.
var (
	ErrNoMatch     = errors.New("no task matches")
	ErrAmbiguous   = errors.New("ambiguous task reference")
	ErrOutOfRange  = errors.New("index out of range")
	ErrRefRequired = errors.New("task reference required")
)

// ResolveTaskRef finds the task a user reference points at.
//
// Resolution order:
//  1. all digits within 1..len(tasks) → 1-based list index
//  2. exact id
//  3. unique id prefix
func ResolveTaskRef(tasks []model.Task, ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, ErrRefRequired
	}

	digits := isAllDigits(ref)
	if digits {
		if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(tasks) {
			return tasks[n-1], nil
		}
	}

	var matches []model.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return model.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguous, ref, len(matches))
	case digits:
		return model.Task{}, fmt.Errorf("%w: have %d, got %s", ErrOutOfRange, len(tasks), ref)
	}
	return model.Task{}, fmt.Errorf("%w: %s", ErrNoMatch, ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
