package model

// Format describes the wire type of a characteristic value. The constants
// are the literal strings used in serialized output.
type Format string

// Characteristic value formats.
const (
	FormatBool   Format = "bool"
	FormatInt    Format = "int"
	FormatFloat  Format = "float"
	FormatString Format = "string"
	FormatUint8  Format = "uint8"
	FormatUint16 Format = "uint16"
	FormatUint32 Format = "uint32"
	FormatUint64 Format = "uint64"
	FormatData   Format = "data"
	FormatTLV8   Format = "tlv8"
	FormatArray  Format = "array"
)

// IsNumeric returns true if values of this format are numbers on the wire.
func (f Format) IsNumeric() bool {
	return f == FormatFloat || f.IsInteger()
}

// IsInteger returns true if values of this format are integers on the wire.
func (f Format) IsInteger() bool {
	switch f {
	case FormatInt, FormatUint8, FormatUint16, FormatUint32, FormatUint64:
		return true
	default:
		return false
	}
}

// IsValid returns true for known formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatBool, FormatInt, FormatFloat, FormatString,
		FormatUint8, FormatUint16, FormatUint32, FormatUint64,
		FormatData, FormatTLV8, FormatArray:
		return true
	default:
		return false
	}
}

// Unit describes the unit of a numeric characteristic value. The constants
// are the literal strings used in serialized output.
type Unit string

// Characteristic value units.
const (
	UnitNone       Unit = ""
	UnitCelsius    Unit = "celsius"
	UnitPercentage Unit = "percentage"
	UnitArcDegrees Unit = "arcdegrees"
	UnitLux        Unit = "lux"
	UnitSeconds    Unit = "seconds"
)

// Perm is a single characteristic permission. The constants are the literal
// strings used in serialized output.
type Perm string

// Characteristic permissions.
const (
	// PermRead allows controllers to read the value. Without it the value
	// is omitted from serialized output entirely.
	PermRead Perm = "pr"

	// PermWrite allows controllers to write the value.
	PermWrite Perm = "pw"

	// PermEvents allows controllers to subscribe to value changes.
	PermEvents Perm = "ev"

	// PermHidden marks the characteristic as hidden from user interfaces.
	PermHidden Perm = "hd"
)

// ContainsPerm reports whether perms includes p.
func ContainsPerm(perms []Perm, p Perm) bool {
	for _, candidate := range perms {
		if candidate == p {
			return true
		}
	}
	return false
}

// Category hints at the primary function of an accessory. It is surfaced
// during discovery and mirrored into the Bridging State service of bridged
// accessories.
type Category uint16

// Accessory categories.
const (
	CategoryOther              Category = 1
	CategoryBridge             Category = 2
	CategoryFan                Category = 3
	CategoryGarageDoorOpener   Category = 4
	CategoryLightbulb          Category = 5
	CategoryDoorLock           Category = 6
	CategoryOutlet             Category = 7
	CategorySwitch             Category = 8
	CategoryThermostat         Category = 9
	CategorySensor             Category = 10
	CategorySecuritySystem     Category = 11
	CategoryDoor               Category = 12
	CategoryWindow             Category = 13
	CategoryWindowCovering     Category = 14
	CategoryProgrammableSwitch Category = 15
	CategoryRangeExtender      Category = 16
	CategoryCamera             Category = 17
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryOther:
		return "Other"
	case CategoryBridge:
		return "Bridge"
	case CategoryFan:
		return "Fan"
	case CategoryGarageDoorOpener:
		return "GarageDoorOpener"
	case CategoryDoorLock:
		return "DoorLock"
	case CategoryLightbulb:
		return "Lightbulb"
	case CategoryOutlet:
		return "Outlet"
	case CategorySwitch:
		return "Switch"
	case CategoryThermostat:
		return "Thermostat"
	case CategorySensor:
		return "Sensor"
	case CategorySecuritySystem:
		return "SecuritySystem"
	case CategoryDoor:
		return "Door"
	case CategoryWindow:
		return "Window"
	case CategoryWindowCovering:
		return "WindowCovering"
	case CategoryProgrammableSwitch:
		return "ProgrammableSwitch"
	case CategoryRangeExtender:
		return "RangeExtender"
	case CategoryCamera:
		return "Camera"
	default:
		return "Unknown"
	}
}
