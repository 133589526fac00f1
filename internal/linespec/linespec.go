// Package linespec resolves user-supplied line-number specifications into
// concrete sets of 1-based line indices. A spec is a single number, a list
// of numbers, an inclusive range string like "3-7", or the literal "all".
package linespec

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Sentinel errors for spec resolution.
var (
	ErrOutOfRange   = errors.New("line number out of range")
	ErrInvalidRange = errors.New("invalid line range")
	ErrInvalidSpec  = errors.New("invalid line spec")
)

// Spec is a parsed line-number specification. The zero value means
// "no spec given"; callers decide what that defaults to.
type Spec struct {
	all    bool
	lines  []int
	ranged bool
	start  int
	end    int
}

// All returns a spec covering every line of the file.
func All() Spec {
	return Spec{all: true}
}

// Single returns a spec targeting exactly one line.
func Single(n int) Spec {
	return Spec{lines: []int{n}}
}

// Lines returns a spec targeting an explicit set of lines.
func Lines(ns []int) Spec {
	return Spec{lines: append([]int(nil), ns...)}
}

// Range returns a spec covering the inclusive range [a, b].
func Range(a, b int) Spec {
	return Spec{ranged: true, start: a, end: b}
}

// IsZero reports whether no spec was given.
func (s Spec) IsZero() bool {
	return !s.all && !s.ranged && len(s.lines) == 0
}

// Parse converts a loosely-typed value, as decoded from a JSON argument map,
// into a Spec. Accepted shapes: a number, a list of numbers, a numeric
// string, a range string "a-b", or the literal "all".
func Parse(v any) (Spec, error) {
	switch val := v.(type) {
	case nil:
		return Spec{}, nil
	case string:
		return parseString(val)
	case []any:
		ns := make([]int, 0, len(val))
		for _, item := range val {
			n, err := cast.ToIntE(item)
			if err != nil {
				return Spec{}, fmt.Errorf("%w: %v", ErrInvalidSpec, item)
			}
			ns = append(ns, n)
		}
		if len(ns) == 0 {
			return Spec{}, fmt.Errorf("%w: empty list", ErrInvalidSpec)
		}
		return Lines(ns), nil
	default:
		n, err := cast.ToIntE(v)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %v", ErrInvalidSpec, v)
		}
		return Single(n), nil
	}
}

func parseString(s string) (Spec, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Spec{}, fmt.Errorf("%w: empty string", ErrInvalidSpec)
	}
	if strings.EqualFold(trimmed, "all") {
		return All(), nil
	}
	if strings.Contains(trimmed, "-") {
		parts := strings.SplitN(trimmed, "-", 2)
		a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errA != nil || errB != nil {
			return Spec{}, fmt.Errorf("%w: %q, use a format like '1-10'", ErrInvalidRange, s)
		}
		return Range(a, b), nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %q", ErrInvalidSpec, s)
	}
	return Single(n), nil
}

// Resolve validates the spec against a file of fileLen lines and returns the
// target indices in ascending order with duplicates removed. The ordering is
// relied on by callers that must process lines in a consistent direction.
func (s Spec) Resolve(fileLen int) ([]int, error) {
	switch {
	case s.all:
		out := make([]int, fileLen)
		for i := range out {
			out[i] = i + 1
		}
		return out, nil

	case s.ranged:
		if s.start > s.end || s.start < 1 || s.end > fileLen {
			return nil, fmt.Errorf("%w: %d-%d (file has %d lines)", ErrInvalidRange, s.start, s.end, fileLen)
		}
		out := make([]int, 0, s.end-s.start+1)
		for n := s.start; n <= s.end; n++ {
			out = append(out, n)
		}
		return out, nil

	default:
		seen := make(map[int]bool, len(s.lines))
		out := make([]int, 0, len(s.lines))
		for _, n := range s.lines {
			if n < 1 || n > fileLen {
				return nil, fmt.Errorf("%w: line %d (file has %d lines)", ErrOutOfRange, n, fileLen)
			}
			if seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
		sort.Ints(out)
		return out, nil
	}
}
