// Package inspect provides accessory tree inspection and characteristic
// manipulation utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing path expressions (e.g., "Living Room Lamp/Lightbulb/On")
//   - Resolving names and catalog tags to type UUIDs
//   - Reading and writing characteristics
//   - Formatting output for display
package inspect

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path represents a parsed inspection path.
// Format: accessory[/service[#subtype][/characteristic]]
type Path struct {
	// Accessory selects the accessory by display name, identity UUID, or
	// decimal AID.
	Accessory string

	// Service selects the service by display name, type UUID, short UUID,
	// or catalog tag. Empty when the path stops at the accessory.
	Service string

	// Subtype narrows the service selection when an accessory carries
	// several services of the same type.
	Subtype string

	// Characteristic selects the characteristic by display name, type
	// UUID, short UUID, or catalog tag.
	Characteristic string

	// IsPartial indicates the path doesn't include a characteristic
	// (used for inspect operations that list services or characteristics).
	IsPartial bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "accessory/service/characteristic" - full path
//   - "accessory/service" - partial (for listing characteristics)
//   - "accessory" - partial (for listing services)
//
// The accessory segment may be a display name, an identity UUID, or a
// decimal AID. The service segment accepts an optional "#subtype" suffix to
// disambiguate repeated service types. Service and characteristic segments
// are resolved against the catalog by the Inspector, so catalog tags and
// short UUIDs work as well as display names.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	// Check for invalid patterns
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 3 {
		return nil, ErrInvalidPath
	}

	p := &Path{Raw: input, Accessory: strings.TrimSpace(parts[0])}
	if p.Accessory == "" {
		return nil, ErrInvalidPath
	}

	if len(parts) == 1 {
		p.IsPartial = true
		return p, nil
	}

	service := strings.TrimSpace(parts[1])
	if sel, subtype, found := strings.Cut(service, "#"); found {
		service = strings.TrimSpace(sel)
		p.Subtype = strings.TrimSpace(subtype)
	}
	if service == "" {
		return nil, ErrInvalidPath
	}
	p.Service = service

	if len(parts) == 2 {
		p.IsPartial = true
		return p, nil
	}

	characteristic := strings.TrimSpace(parts[2])
	if characteristic == "" {
		return nil, ErrInvalidPath
	}
	p.Characteristic = characteristic

	return p, nil
}

// String returns the path as a string.
func (p *Path) String() string {
	var sb strings.Builder

	sb.WriteString(p.Accessory)

	if p.Service == "" {
		return sb.String()
	}

	sb.WriteString("/")
	sb.WriteString(p.Service)
	if p.Subtype != "" {
		sb.WriteString("#")
		sb.WriteString(p.Subtype)
	}

	if p.IsPartial || p.Characteristic == "" {
		return sb.String()
	}

	sb.WriteString("/")
	sb.WriteString(p.Characteristic)

	return sb.String()
}
