package model

// ChangeEvent describes a committed characteristic value change as it
// bubbles from the characteristic through its service and accessory up to
// observers registered on the accessory or bridge.
type ChangeEvent struct {
	// Characteristic is the cell whose cached value changed.
	Characteristic *Characteristic

	// Service and Accessory locate the characteristic in the tree. They
	// are filled in by the owning level as the event bubbles up; Accessory
	// is nil for a service that is not attached to an accessory.
	Service   *Service
	Accessory *Accessory

	// OldValue is the cached value before the change, NewValue after.
	OldValue any
	NewValue any

	// Origin is the opaque token the writer passed along, if any. Device
	// code uses it to tell its own updates apart from controller writes.
	Origin any

	// ConnID identifies the controller connection that caused the change,
	// or is empty for device-side updates.
	ConnID string
}

// ConfigurationEvent signals a change to the shape of the accessory tree:
// services or characteristics added or removed, or children attached to or
// detached from a bridge.
type ConfigurationEvent struct {
	// Accessory is the accessory whose layout changed, nil while the
	// service is not attached to one.
	Accessory *Accessory

	// Service is the service whose membership changed, nil for
	// accessory-level changes such as added services or bridge children.
	Service *Service

	// Signature carries the recomputed configuration signature when the
	// change triggered a recompute, otherwise it is empty.
	Signature string
}

// ReadRequest carries the controller-side context of a characteristic read.
type ReadRequest struct {
	// ConnID identifies the requesting connection, empty for local reads.
	ConnID string

	// Origin is an opaque token threaded through to the resulting
	// ChangeEvent if the read updates the cached value.
	Origin any
}

// WriteRequest carries the controller-side context of a characteristic write.
type WriteRequest struct {
	// ConnID identifies the writing connection, empty for local writes.
	ConnID string

	// Origin is an opaque token threaded through to the resulting
	// ChangeEvent.
	Origin any
}

// IdentifyRequest carries the context of a protocol identify routine.
type IdentifyRequest struct {
	// ConnID identifies the requesting connection, empty for local calls.
	ConnID string
}

// Observer receives the events an accessory or bridge emits. Bridges relay
// the events of their children, so a single observer on the bridge sees the
// whole tree.
//
// Callbacks run synchronously on the goroutine that committed the change
// and must not call back into the emitting accessory.
type Observer interface {
	// CharacteristicChanged is called after a characteristic's cached
	// value changed.
	CharacteristicChanged(ev *ChangeEvent)

	// ConfigurationChanged is called after the tree layout changed.
	ConfigurationChanged(ev *ConfigurationEvent)

	// AccessoryIdentified is called after an identify routine completed
	// successfully.
	AccessoryIdentified(a *Accessory, req IdentifyRequest)
}
