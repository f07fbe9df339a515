package migrator

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is a dotted numeric version such as 1.0.1.
type Version []uint64

// ParseVersion parses a dot-separated sequence of non-negative integers.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return nil, errors.New("empty version")
	}

	parts := strings.Split(s, ".")
	v := make(Version, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version %q", s)
		}
		v[i] = n
	}

	return v, nil
}

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to, or
// after other. Missing trailing components are treated as zero, so 1.0 and
// 1.0.0 are equal.
func (v Version) Compare(other Version) int {
	n := max(len(v), len(other))
	for i := range n {
		a, b := v.at(i), other.at(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}

	return 0
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.FormatUint(n, 10)
	}

	return strings.Join(parts, ".")
}

func (v Version) at(i int) uint64 {
	if i < len(v) {
		return v[i]
	}

	return 0
}
