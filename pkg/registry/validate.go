package registry

import (
	"fmt"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// ValidationResult holds the outcome of validating an accessory tree
// against the catalog.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// ValidateService checks whether a service carries the characteristics its
// catalog definition requires. Service types not in the catalog produce a
// warning, missing required characteristics produce errors, and active
// characteristics outside the definition produce warnings.
func ValidateService(s *model.Service) ValidationResult {
	var result ValidationResult
	validateServiceInto(s, "", &result)
	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateAccessory checks an accessory's services against the catalog. The
// information service is validated like any other; its fixed shape is
// enforced by the model itself.
func ValidateAccessory(a *model.Accessory) ValidationResult {
	var result ValidationResult
	validateAccessoryInto(a, "", &result)
	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateBridge checks the bridge accessory and every bridged child.
// Messages are prefixed with the owning accessory's name.
func ValidateBridge(b *model.Bridge) ValidationResult {
	var result ValidationResult
	validateAccessoryInto(b.Accessory, b.Name(), &result)
	for _, child := range b.Children() {
		validateAccessoryInto(child, child.Name(), &result)
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func validateAccessoryInto(a *model.Accessory, prefix string, result *ValidationResult) {
	seen := make(map[string]bool)
	for _, s := range a.Services() {
		key := s.Type() + "|" + s.Subtype()
		if seen[key] {
			result.Errors = append(result.Errors,
				prefixed(prefix, fmt.Sprintf("duplicate service %s with subtype %q", serviceLabel(s), s.Subtype())))
		}
		seen[key] = true
		validateServiceInto(s, prefix, result)
	}
	if a.Bridged() {
		if !hasServiceType(a, model.TypeBridgingState) {
			result.Errors = append(result.Errors,
				prefixed(prefix, "bridged accessory missing Bridging State service"))
		}
	}
}

func validateServiceInto(s *model.Service, prefix string, result *ValidationResult) {
	blueprint, ok := ServiceByType(s.Type())
	if !ok {
		result.Warnings = append(result.Warnings,
			prefixed(prefix, fmt.Sprintf("service %s type %s not in catalog", serviceLabel(s), model.ShortUUID(s.Type()))))
		return
	}

	active := make(map[string]bool)
	for _, c := range s.Characteristics() {
		active[c.Type()] = true
	}

	known := make(map[string]bool)
	for _, req := range blueprint.RequiredCharacteristics() {
		known[req.Type()] = true
		if !active[req.Type()] {
			result.Errors = append(result.Errors,
				prefixed(prefix, fmt.Sprintf("service %s missing required characteristic %s", serviceLabel(s), req.Name())))
		}
	}
	for _, opt := range blueprint.OptionalCharacteristics() {
		known[opt.Type()] = true
	}

	for _, c := range s.Characteristics() {
		if !known[c.Type()] {
			result.Warnings = append(result.Warnings,
				prefixed(prefix, fmt.Sprintf("service %s carries characteristic %s outside its definition", serviceLabel(s), c.Name())))
		}
	}
}

func hasServiceType(a *model.Accessory, typeUUID string) bool {
	for _, s := range a.Services() {
		if s.Type() == typeUUID {
			return true
		}
	}
	return false
}

func serviceLabel(s *model.Service) string {
	if sub := s.Subtype(); sub != "" {
		return fmt.Sprintf("%s [%s]", s.Name(), sub)
	}
	return s.Name()
}

func prefixed(prefix, msg string) string {
	if prefix == "" {
		return msg
	}
	return prefix + ": " + msg
}
