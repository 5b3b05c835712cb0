package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type CodeOwnerType string

const (
	CodeOwnerSacco  CodeOwnerType = "SACCO"
	CodeOwnerMatatu CodeOwnerType = "MATATU"
)

// DefaultCodePrefix is the dial prefix rendered ahead of the base and
// checksum digits when no operator prefix is configured.
const DefaultCodePrefix = "*001*"

// CodePoolEntry is one short dial code. The pool is seeded once with bases
// 001 through 999; only the allocation fields ever change.
type CodePoolEntry struct {
	Base        string         `json:"base"` // 3-digit zero-padded, "001".."999"
	Checksum    int            `json:"checksum"`
	Allocated   bool           `json:"allocated"`
	OwnerType   *CodeOwnerType `json:"owner_type,omitempty"`
	OwnerID     *string        `json:"owner_id,omitempty"`
	AllocatedAt *time.Time     `json:"allocated_at,omitempty"`
}

// DigitalRoot computes the iterated cross-sum of n's decimal digits until a
// single digit remains. For n in 1..999 the result is always in 1..9.
func DigitalRoot(n int) int {
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// FormatCode renders a pool entry as a dialable string:
// prefix + zero-padded base + checksum digit + "#".
func FormatCode(prefix, base string) (string, error) {
	n, err := parseBase(base)
	if err != nil {
		return "", err
	}
	if prefix == "" {
		prefix = DefaultCodePrefix
	}
	return fmt.Sprintf("%s%03d%d#", prefix, n, DigitalRoot(n)), nil
}

// ParseCode extracts the base and provided checksum digit from a code
// string. The grammar is fixed: the trailing 4 digits before an optional
// '#' are split into base (first 3) and checksum (last 1). The prefix is
// operator-chosen and ignored here.
func ParseCode(code string) (base string, checksum int, err error) {
	s := strings.TrimSpace(code)
	s = strings.TrimSuffix(s, "#")
	digits := trailingDigits(s)
	if len(digits) < 4 {
		return "", 0, &ValidationError{Field: "code", Reason: "expected at least 4 trailing digits"}
	}
	digits = digits[len(digits)-4:]
	base = digits[:3]
	if _, err := parseBase(base); err != nil {
		return "", 0, err
	}
	checksum = int(digits[3] - '0')
	return base, checksum, nil
}

// VerifyChecksum reports whether the provided digit is the digital root of
// the base.
func VerifyChecksum(base string, checksum int) (bool, error) {
	n, err := parseBase(base)
	if err != nil {
		return false, err
	}
	return DigitalRoot(n) == checksum, nil
}

func parseBase(base string) (int, error) {
	if len(base) != 3 {
		return 0, &ValidationError{Field: "base", Reason: "must be 3 digits"}
	}
	n, err := strconv.Atoi(base)
	if err != nil || n < 1 || n > 999 {
		return 0, &ValidationError{Field: "base", Reason: "must be in 001..999"}
	}
	return n, nil
}

func trailingDigits(s string) string {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	return s[i:]
}
