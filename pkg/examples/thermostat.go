package examples

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/registry"
)

// Heating/cooling states as exposed by the thermostat service.
const (
	HeatingCoolingOff  int64 = 0
	HeatingCoolingHeat int64 = 1
	HeatingCoolingCool int64 = 2
	HeatingCoolingAuto int64 = 3
)

// Thermostat represents a heating/cooling controller with a simulated
// temperature sensor. The current temperature is served through a read
// handler, so every controller read reaches the sensor; the target
// temperature and mode accept controller writes.
type Thermostat struct {
	mu sync.RWMutex

	accessory *model.Accessory

	current      *model.Characteristic
	target       *model.Characteristic
	currentState *model.Characteristic
	targetState  *model.Characteristic

	// Simulated hardware state.
	temperature float64
	setpoint    float64
	mode        int64
}

// ThermostatConfig contains configuration for creating a Thermostat.
type ThermostatConfig struct {
	Name         string
	Manufacturer string
	Model        string
	SerialNumber string

	// InitialTemperature is the simulated room temperature at start.
	InitialTemperature float64

	// InitialTarget is the starting setpoint.
	InitialTarget float64
}

// NewThermostat creates a new thermostat accessory with the given configuration.
func NewThermostat(cfg ThermostatConfig) (*Thermostat, error) {
	if cfg.Name == "" {
		cfg.Name = "Thermostat"
	}
	if cfg.InitialTemperature == 0 {
		cfg.InitialTemperature = 21.0
	}
	if cfg.InitialTarget == 0 {
		cfg.InitialTarget = cfg.InitialTemperature
	}

	accessory, err := model.NewAccessory(cfg.Name, model.GenerateUUID("thermostat-"+cfg.SerialNumber))
	if err != nil {
		return nil, fmt.Errorf("creating thermostat accessory: %w", err)
	}
	accessory.SetCategory(model.CategoryThermostat)

	info := accessory.Info()
	_ = info.UpdateCharacteristicValue(model.TypeManufacturer, cfg.Manufacturer)
	_ = info.UpdateCharacteristicValue(model.TypeModel, cfg.Model)
	_ = info.UpdateCharacteristicValue(model.TypeSerialNumber, cfg.SerialNumber)

	svc, err := registry.NewService(registry.SvcThermostat)
	if err != nil {
		return nil, fmt.Errorf("creating thermostat service: %w", err)
	}
	svc.SetPrimary(true)
	if err := accessory.AddService(svc); err != nil {
		return nil, err
	}

	t := &Thermostat{
		accessory:   accessory,
		temperature: cfg.InitialTemperature,
		setpoint:    cfg.InitialTarget,
	}

	if t.current, err = svc.GetCharacteristic(registry.MustCharacteristicType(registry.CharCurrentTemperature)); err != nil {
		return nil, err
	}
	if t.target, err = svc.GetCharacteristic(registry.MustCharacteristicType(registry.CharTargetTemperature)); err != nil {
		return nil, err
	}
	if t.currentState, err = svc.GetCharacteristic(registry.MustCharacteristicType(registry.CharCurrentHeatingCoolingState)); err != nil {
		return nil, err
	}
	if t.targetState, err = svc.GetCharacteristic(registry.MustCharacteristicType(registry.CharTargetHeatingCoolingState)); err != nil {
		return nil, err
	}

	t.current.SetReadHandler(t.handleCurrentRead)
	t.target.SetWriteHandler(t.handleTargetWrite)
	t.targetState.SetWriteHandler(t.handleModeWrite)

	t.current.UpdateValue(t.temperature)
	t.target.UpdateValue(t.setpoint)

	return t, nil
}

// Accessory returns the underlying accessory model.
func (t *Thermostat) Accessory() *model.Accessory {
	return t.accessory
}

func (t *Thermostat) handleCurrentRead(ctx context.Context, req model.ReadRequest, respond model.ReadResponder) {
	t.mu.RLock()
	temperature := t.temperature
	t.mu.RUnlock()

	respond(temperature, nil)
}

func (t *Thermostat) handleTargetWrite(ctx context.Context, value any, req model.WriteRequest, respond model.WriteResponder) {
	setpoint, ok := toFloat(value)
	if !ok {
		respond(fmt.Errorf("target temperature: expected number, got %T", value))
		return
	}

	t.mu.Lock()
	t.setpoint = setpoint
	t.mu.Unlock()

	respond(nil)
}

func (t *Thermostat) handleModeWrite(ctx context.Context, value any, req model.WriteRequest, respond model.WriteResponder) {
	mode, ok := toInt64(value)
	if !ok {
		respond(fmt.Errorf("heating cooling state: expected integer, got %T", value))
		return
	}
	if mode < HeatingCoolingOff || mode > HeatingCoolingAuto {
		respond(fmt.Errorf("heating cooling state: %d out of range", mode))
		return
	}

	t.mu.Lock()
	t.mode = mode
	t.mu.Unlock()

	respond(nil)
}

// Tick advances the simulation one step: the room drifts toward the
// setpoint while heating or cooling is active, and the reported
// heating/cooling state follows.
func (t *Thermostat) Tick() {
	t.mu.Lock()

	var state int64
	switch {
	case t.mode == HeatingCoolingOff:
		state = HeatingCoolingOff
	case t.temperature < t.setpoint-0.1 && (t.mode == HeatingCoolingHeat || t.mode == HeatingCoolingAuto):
		state = HeatingCoolingHeat
		t.temperature += 0.2
	case t.temperature > t.setpoint+0.1 && (t.mode == HeatingCoolingCool || t.mode == HeatingCoolingAuto):
		state = HeatingCoolingCool
		t.temperature -= 0.2
	default:
		state = HeatingCoolingOff
	}
	t.temperature = math.Round(t.temperature*10) / 10

	temperature := t.temperature
	t.mu.Unlock()

	t.current.UpdateValue(temperature)
	t.currentState.UpdateValue(state)
}

// Temperature returns the simulated room temperature.
func (t *Thermostat) Temperature() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.temperature
}

// Target returns the current setpoint.
func (t *Thermostat) Target() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.setpoint
}

// SetTemperature overrides the simulated room temperature, e.g. to model
// an opened window.
func (t *Thermostat) SetTemperature(temperature float64) {
	t.mu.Lock()
	t.temperature = temperature
	t.mu.Unlock()

	t.current.UpdateValue(temperature)
}

// toFloat converts the numeric values a controller write can carry.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
