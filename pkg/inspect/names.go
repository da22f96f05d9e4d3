package inspect

import (
	"strings"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/registry"
)

// Name tables for resolving human-readable selectors to type UUIDs.
// Tables are populated from the embedded catalog.
var (
	serviceTypes        map[string]string
	characteristicTypes map[string]string
)

func init() {
	serviceTypes = make(map[string]string)
	for _, tag := range registry.ServiceTags() {
		b, err := registry.Service(tag)
		if err != nil {
			continue
		}
		serviceTypes[strings.ToLower(b.Tag())] = b.Type()
		serviceTypes[strings.ToLower(b.Name())] = b.Type()
	}

	characteristicTypes = make(map[string]string)
	for _, tag := range registry.CharacteristicTags() {
		b, err := registry.Characteristic(tag)
		if err != nil {
			continue
		}
		characteristicTypes[strings.ToLower(b.Tag())] = b.Type()
		characteristicTypes[strings.ToLower(b.Name())] = b.Type()
	}
}

// ResolveServiceType resolves a service selector to its type UUID
// (case-insensitive). UUIDs in full or short form resolve to themselves;
// everything else is looked up as a catalog tag or display name.
func ResolveServiceType(selector string) (string, bool) {
	if normalized, err := model.NormalizeUUID(selector); err == nil {
		return normalized, true
	}
	typ, ok := serviceTypes[strings.ToLower(selector)]
	return typ, ok
}

// ResolveCharacteristicType resolves a characteristic selector to its type
// UUID (case-insensitive). UUIDs in full or short form resolve to
// themselves; everything else is looked up as a catalog tag or display name.
func ResolveCharacteristicType(selector string) (string, bool) {
	if normalized, err := model.NormalizeUUID(selector); err == nil {
		return normalized, true
	}
	typ, ok := characteristicTypes[strings.ToLower(selector)]
	return typ, ok
}

// ServiceTypeName returns the catalog display name for a service type UUID,
// or the short UUID when the type is not in the catalog.
func ServiceTypeName(typeUUID string) string {
	if b, ok := registry.ServiceByType(typeUUID); ok {
		return b.Name()
	}
	return model.ShortUUID(typeUUID)
}

// CharacteristicTypeName returns the catalog display name for a
// characteristic type UUID, or the short UUID when the type is not in the
// catalog.
func CharacteristicTypeName(typeUUID string) string {
	if b, ok := registry.CharacteristicByType(typeUUID); ok {
		return b.Name()
	}
	return model.ShortUUID(typeUUID)
}
