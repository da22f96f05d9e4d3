package log

import (
	"time"
)

// Event represents an accessory tree log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"2,keyasint"`

	// Accessory is the display name of the accessory involved.
	Accessory string `cbor:"3,keyasint,omitempty"`

	// AccessoryUUID is the identity UUID of the accessory involved.
	AccessoryUUID string `cbor:"4,keyasint,omitempty"`

	// AID is the accessory's protocol ID (0 before assignment).
	AID uint64 `cbor:"5,keyasint,omitempty"`

	// ConnID identifies the controller connection that caused the event,
	// empty for device-side events.
	ConnID string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (at most one of these is set; identify
	// events carry no payload beyond the accessory fields).
	Change *ChangeEventData `cbor:"7,keyasint,omitempty"`
	Config *ConfigEventData `cbor:"8,keyasint,omitempty"`
	Error  *ErrorEventData  `cbor:"9,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryChange indicates a characteristic value change.
	CategoryChange Category = 0
	// CategoryConfig indicates a tree layout change.
	CategoryConfig Category = 1
	// CategoryIdentify indicates a completed identify routine.
	CategoryIdentify Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryChange:
		return "CHANGE"
	case CategoryConfig:
		return "CONFIG"
	case CategoryIdentify:
		return "IDENTIFY"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ChangeEventData captures a characteristic value change.
type ChangeEventData struct {
	// ServiceType is the owning service's type UUID.
	ServiceType string `cbor:"1,keyasint,omitempty"`

	// ServiceName is the owning service's display name.
	ServiceName string `cbor:"2,keyasint,omitempty"`

	// Subtype is the owning service's subtype, if any.
	Subtype string `cbor:"3,keyasint,omitempty"`

	// CharacteristicType is the characteristic's type UUID.
	CharacteristicType string `cbor:"4,keyasint"`

	// CharacteristicName is the characteristic's display name.
	CharacteristicName string `cbor:"5,keyasint,omitempty"`

	// IID is the characteristic's instance ID (0 before assignment).
	IID uint64 `cbor:"6,keyasint,omitempty"`

	// OldValue is the cached value before the change, NewValue after.
	OldValue any `cbor:"7,keyasint,omitempty"`
	NewValue any `cbor:"8,keyasint,omitempty"`
}

// ConfigEventData captures a tree layout change.
type ConfigEventData struct {
	// Signature is the recomputed configuration signature, empty when
	// the change did not trigger a recompute.
	Signature string `cbor:"1,keyasint,omitempty"`

	// ServiceType is the type UUID of the service whose membership
	// changed, empty for accessory-level changes.
	ServiceType string `cbor:"2,keyasint,omitempty"`

	// ServiceName is the display name of that service.
	ServiceName string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors raised while processing events.
type ErrorEventData struct {
	// Op describes what operation was being performed.
	Op string `cbor:"1,keyasint,omitempty"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}
