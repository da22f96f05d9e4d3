// Package version provides firmware revision parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the library version, used as the default firmware revision of
// accessories that do not report their own.
const Current = "1.0.0"

// Revision represents a parsed "major.minor.patch" firmware revision, the
// format carried by the Firmware Revision characteristic.
type Revision struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// Parse parses a "major.minor.patch" revision string. The patch component
// may be omitted and defaults to zero.
func Parse(s string) (Revision, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Revision{}, fmt.Errorf("invalid revision %q: expected major.minor[.patch]", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return Revision{}, fmt.Errorf("invalid revision %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return Revision{}, fmt.Errorf("invalid revision %q: bad minor component", s)
	}

	var patch uint64
	if len(parts) == 3 {
		patch, err = strconv.ParseUint(parts[2], 10, 16)
		if err != nil || parts[2] == "" {
			return Revision{}, fmt.Errorf("invalid revision %q: bad patch component", s)
		}
	}

	return Revision{Major: uint16(major), Minor: uint16(minor), Patch: uint16(patch)}, nil
}

// MustParse is like Parse but panics on invalid input. It is intended for
// statically known revision strings.
func MustParse(s string) Revision {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the revision as "major.minor.patch".
func (r Revision) String() string {
	return fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
}

// Compare orders two revisions: -1 if r is older than other, 0 if equal,
// 1 if newer.
func (r Revision) Compare(other Revision) int {
	if r.Major != other.Major {
		return compareUint16(r.Major, other.Major)
	}
	if r.Minor != other.Minor {
		return compareUint16(r.Minor, other.Minor)
	}
	return compareUint16(r.Patch, other.Patch)
}

// Newer returns true if r is strictly newer than other.
func (r Revision) Newer(other Revision) bool {
	return r.Compare(other) > 0
}

// Compatible returns true if the other revision has the same major version.
func (r Revision) Compatible(other Revision) bool {
	return r.Major == other.Major
}

func compareUint16(a, b uint16) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
