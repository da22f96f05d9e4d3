// Package model implements the HAP accessory data model.
//
// # Accessory Model Hierarchy
//
// HAP uses a 3-level hierarchy:
//
//	Accessory > Service > Characteristic
//
// An Accessory represents a physical or logical device (e.g., a lightbulb,
// thermostat). Accessories contain one or more Services, each representing a
// functional unit. Services contain Characteristics, which hold the typed
// values the protocol reads and writes.
//
// # Accessory Structure
//
// Every accessory has at least the Accessory Information service, which is
// always serialized with instance ID 1. Additional services represent
// functional capabilities:
//
//	Accessory (garden-light)
//	├── Accessory Information (iid 1)
//	│   ├── Identify
//	│   ├── Manufacturer
//	│   ├── Model
//	│   ├── Name
//	│   └── Serial Number
//	└── Lightbulb
//	    ├── On
//	    └── Brightness
//
// A Bridge is an accessory that additionally hosts child accessories and
// proxies their events. Children of a bridge carry a Bridging State service
// seeded from the child's identity at the time it is added.
//
// # Addressing
//
// On the wire, resources are addressed by the pair:
//
//	(AID, IID)
//
// AID identifies the accessory within the published tree, IID the service or
// characteristic within the accessory. Both are handed out by an
// IdentifierAssigner so that they stay stable across restarts; only the
// Accessory Information service has a fixed IID.
//
// # Access Control
//
// Characteristics have permissions:
//   - PermRead: value can be read and appears in serialized output
//   - PermWrite: value can be written by controllers
//   - PermEvents: value changes are delivered as notifications
//
// Reads and writes can be intercepted with device-side handlers; each handler
// invocation receives a responder that is honored at most once.
package model
