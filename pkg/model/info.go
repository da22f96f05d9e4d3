package model

// Reserved service types that the model itself instantiates.
const (
	TypeAccessoryInformation = "0000003E-0000-1000-8000-0026BB765291"
	TypeBridgingState        = "00000062-0000-1000-8000-0026BB765291"
)

// Characteristic types of the reserved services.
const (
	TypeIdentify            = "00000014-0000-1000-8000-0026BB765291"
	TypeManufacturer        = "00000020-0000-1000-8000-0026BB765291"
	TypeModel               = "00000021-0000-1000-8000-0026BB765291"
	TypeName                = "00000023-0000-1000-8000-0026BB765291"
	TypeSerialNumber        = "00000030-0000-1000-8000-0026BB765291"
	TypeFirmwareRevision    = "00000052-0000-1000-8000-0026BB765291"
	TypeAccessoryIdentifier = "00000057-0000-1000-8000-0026BB765291"
	TypeReachable           = "00000063-0000-1000-8000-0026BB765291"
	TypeCategory            = "000000A3-0000-1000-8000-0026BB765291"
)

// AccessoryInformationIID is the fixed instance ID of the Accessory
// Information service. No other service or characteristic is ever assigned
// it.
const AccessoryInformationIID uint64 = 1

// NewAccessoryInformationService builds the mandatory Accessory Information
// service. The Name characteristic is seeded with the accessory's display
// name; Firmware Revision is carried as an optional template.
func NewAccessoryInformationService(name string) *Service {
	s := mustService("Accessory Information", TypeAccessoryInformation, "")
	readOnly := Props{Format: FormatString, Perms: []Perm{PermRead}}

	identify := mustCharacteristic("Identify", TypeIdentify,
		Props{Format: FormatBool, Perms: []Perm{PermWrite}})
	manufacturer := mustCharacteristic("Manufacturer", TypeManufacturer, readOnly)
	model := mustCharacteristic("Model", TypeModel, readOnly)
	displayName := mustCharacteristic("Name", TypeName, readOnly)
	displayName.UpdateValue(name)
	serial := mustCharacteristic("Serial Number", TypeSerialNumber, readOnly)

	for _, c := range []*Characteristic{identify, manufacturer, model, displayName, serial} {
		if err := s.AddCharacteristic(c); err != nil {
			panic(err)
		}
	}
	s.AddOptionalCharacteristic(mustCharacteristic("Firmware Revision", TypeFirmwareRevision, readOnly))
	return s
}

// NewBridgingStateService builds the Bridging State service a bridge seeds
// onto each child when it is added.
func NewBridgingStateService() *Service {
	s := mustService("Bridging State", TypeBridgingState, "")

	identifier := mustCharacteristic("Accessory Identifier", TypeAccessoryIdentifier,
		Props{Format: FormatString, Perms: []Perm{PermRead}})
	reachable := mustCharacteristic("Reachable", TypeReachable,
		Props{Format: FormatBool, Perms: []Perm{PermRead, PermEvents}})
	category := mustCharacteristic("Category", TypeCategory,
		Props{Format: FormatUint16, Perms: []Perm{PermRead, PermEvents}})

	for _, c := range []*Characteristic{identifier, reachable, category} {
		if err := s.AddCharacteristic(c); err != nil {
			panic(err)
		}
	}
	return s
}

func mustService(name, typeUUID, subtype string) *Service {
	s, err := NewService(name, typeUUID, subtype)
	if err != nil {
		panic(err)
	}
	return s
}

func mustCharacteristic(name, typeUUID string, props Props) *Characteristic {
	c, err := NewCharacteristic(name, typeUUID, props)
	if err != nil {
		panic(err)
	}
	return c
}
