package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BaseUUIDSuffix is the shared tail of all Apple-defined HAP type UUIDs.
// Such types are commonly written in a short form consisting of the first
// group with leading zeros removed, e.g. "3E" for the Accessory Information
// service.
const BaseUUIDSuffix = "-0000-1000-8000-0026BB765291"

// ErrInvalidUUID indicates a string that is neither a full UUID nor a valid
// short form.
var ErrInvalidUUID = errors.New("invalid UUID")

// NormalizeUUID converts a type identifier into its canonical form: the full
// 36-character UUID in upper case. It accepts full UUIDs in any case as well
// as the short form of Apple-defined types (1 to 8 hex digits), which is
// zero-padded and expanded with BaseUUIDSuffix.
func NormalizeUUID(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidUUID)
	}
	if len(s) <= 8 && isHexString(s) {
		return fmt.Sprintf("%08s", strings.ToUpper(s)) + BaseUUIDSuffix, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidUUID, s)
	}
	return strings.ToUpper(id.String()), nil
}

// MustUUID is like NormalizeUUID but panics on invalid input. It is intended
// for statically known type identifiers.
func MustUUID(s string) string {
	normalized, err := NormalizeUUID(s)
	if err != nil {
		panic(err)
	}
	return normalized
}

// ShortUUID returns the compact display form of a type UUID: for
// Apple-defined types the first group with leading zeros stripped, otherwise
// the input unchanged. Useful for logs and error messages.
func ShortUUID(s string) string {
	if !strings.HasSuffix(s, BaseUUIDSuffix) {
		return s
	}
	short := strings.TrimLeft(strings.TrimSuffix(s, BaseUUIDSuffix), "0")
	if short == "" {
		return "0"
	}
	return short
}

// GenerateUUID derives a stable UUID from arbitrary identifying data, for
// accessories that have no factory-assigned identity. The same input always
// yields the same UUID.
func GenerateUUID(data string) string {
	return strings.ToUpper(uuid.NewSHA1(uuid.Nil, []byte(data)).String())
}

// EqualUUID reports whether two type identifiers refer to the same type,
// normalizing both sides first. Invalid identifiers compare false.
func EqualUUID(a, b string) bool {
	na, err := NormalizeUUID(a)
	if err != nil {
		return false
	}
	nb, err := NormalizeUUID(b)
	if err != nil {
		return false
	}
	return na == nb
}

func isHexString(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
