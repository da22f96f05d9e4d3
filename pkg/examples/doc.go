// Package examples provides reference implementations demonstrating how to
// build accessories with the hap-go library.
//
// The example implementations show:
//   - Accessory model construction (Accessory > Service > Characteristic)
//   - Catalog-driven service setup via the registry package
//   - Read and write handler implementation with latched responders
//   - Device-side state updates via UpdateValue
//
// Available examples:
//   - Lamp: a dimmable lightbulb
//   - Thermostat: a heating/cooling controller with a simulated sensor
//   - WeatherStation: a multi-service sensor accessory
//
// These examples can serve as templates for building real device implementations.
package examples
