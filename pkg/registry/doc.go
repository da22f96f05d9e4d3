// Package registry provides the catalog of well-known HAP service and
// characteristic types.
//
// The catalog is data-driven: definitions live in an embedded YAML table and
// all instances are built by generic constructors, so adding a type means
// adding a table row, not a Go type. Tags are stable identifiers into the
// table; the generated constants in types_gen.go name them.
//
// # Usage
//
// Services are created from their tag and wired into accessories:
//
//	bulb, err := registry.NewService(registry.SvcLightbulb)
//	if err != nil {
//		return err
//	}
//	accessory.AddService(bulb)
//
//	// Required characteristics are active immediately.
//	on, _ := bulb.GetCharacteristic("On")
//	on.UpdateValue(true)
//
//	// Optional characteristics activate on first lookup.
//	brightness, _ := bulb.GetCharacteristic("Brightness")
//	brightness.UpdateValue(80)
//
// Blueprints carry a type's identity without instantiating it, for callers
// that decide later:
//
//	bp, _ := registry.Characteristic(registry.CharBrightness)
//	c, _ := service.AddCharacteristicFromBlueprint(bp)
package registry
