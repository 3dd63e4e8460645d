package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRefs parses 1-based task numbers from args.
//
// Every arg must be all digits. Numbers are returned in argument order with
// duplicates dropped. Zero is out of range.
func ParseTaskRefs(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}

	seen := make(map[int]bool, len(args))
	refs := make([]int, 0, len(args))
	for _, arg := range args {
		if !isAllDigits(arg) {
			return nil, userErrorf("invalid task reference: %s", arg)
		}
		num, err := strconv.Atoi(arg)
		if err != nil {
			return nil, userErrorf("invalid task reference: %s", arg)
		}
		if num < 1 {
			return nil, userErrorf("task number out of range: %d", num)
		}
		if seen[num] {
			continue
		}
		seen[num] = true
		refs = append(refs, num)
	}
	return refs, nil
}

// ParseTaskRef parses exactly one task number.
func ParseTaskRef(args []string) (int, error) {
	refs, err := ParseTaskRefs(args)
	if err != nil {
		return 0, err
	}
	if len(args) > 1 {
		return 0, userErrorf("expected one task reference, got %d", len(args))
	}
	return refs[0], nil
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

// userError is a mistake in the command line itself.
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

func userErrorf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}
