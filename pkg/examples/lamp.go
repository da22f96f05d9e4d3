package examples

import (
	"context"
	"fmt"
	"sync"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/registry"
)

// Lamp represents a dimmable lightbulb accessory. It demonstrates how to
// wire write handlers so controller writes reach the device, and how
// device-side changes flow back through UpdateValue.
type Lamp struct {
	mu sync.RWMutex

	accessory *model.Accessory

	on         *model.Characteristic
	brightness *model.Characteristic

	// Simulated hardware state.
	powered   bool
	level     int64
	blinkRuns int
}

// LampConfig contains configuration for creating a Lamp.
type LampConfig struct {
	Name         string
	Manufacturer string
	Model        string
	SerialNumber string

	// Dimmable promotes the Brightness characteristic onto the wire.
	Dimmable bool
}

// NewLamp creates a new lamp accessory with the given configuration.
func NewLamp(cfg LampConfig) (*Lamp, error) {
	if cfg.Name == "" {
		cfg.Name = "Lamp"
	}

	accessory, err := model.NewAccessory(cfg.Name, model.GenerateUUID("lamp-"+cfg.SerialNumber))
	if err != nil {
		return nil, fmt.Errorf("creating lamp accessory: %w", err)
	}
	accessory.SetCategory(model.CategoryLightbulb)

	info := accessory.Info()
	_ = info.UpdateCharacteristicValue(model.TypeManufacturer, cfg.Manufacturer)
	_ = info.UpdateCharacteristicValue(model.TypeModel, cfg.Model)
	_ = info.UpdateCharacteristicValue(model.TypeSerialNumber, cfg.SerialNumber)

	svc, err := registry.NewService(registry.SvcLightbulb)
	if err != nil {
		return nil, fmt.Errorf("creating lightbulb service: %w", err)
	}
	svc.SetPrimary(true)
	if err := accessory.AddService(svc); err != nil {
		return nil, err
	}

	lamp := &Lamp{accessory: accessory, level: 100}

	lamp.on, err = svc.GetCharacteristic(registry.MustCharacteristicType(registry.CharOn))
	if err != nil {
		return nil, err
	}
	lamp.on.SetWriteHandler(lamp.handleOnWrite)

	if cfg.Dimmable {
		// Brightness ships as an optional template; looking it up
		// promotes it onto the wire.
		lamp.brightness, err = svc.GetCharacteristic(registry.MustCharacteristicType(registry.CharBrightness))
		if err != nil {
			return nil, err
		}
		lamp.brightness.SetWriteHandler(lamp.handleBrightnessWrite)
		lamp.brightness.UpdateValue(lamp.level)
	}

	accessory.SetIdentifyHandler(lamp.handleIdentify)

	return lamp, nil
}

// Accessory returns the underlying accessory model.
func (l *Lamp) Accessory() *model.Accessory {
	return l.accessory
}

func (l *Lamp) handleOnWrite(ctx context.Context, value any, req model.WriteRequest, respond model.WriteResponder) {
	on, ok := value.(bool)
	if !ok {
		respond(fmt.Errorf("on: expected bool, got %T", value))
		return
	}

	l.mu.Lock()
	l.powered = on
	l.mu.Unlock()

	respond(nil)
}

func (l *Lamp) handleBrightnessWrite(ctx context.Context, value any, req model.WriteRequest, respond model.WriteResponder) {
	level, ok := toInt64(value)
	if !ok {
		respond(fmt.Errorf("brightness: expected integer, got %T", value))
		return
	}

	l.mu.Lock()
	l.level = level
	l.mu.Unlock()

	respond(nil)
}

func (l *Lamp) handleIdentify(ctx context.Context, req model.IdentifyRequest, respond model.IdentifyResponder) {
	l.mu.Lock()
	l.blinkRuns++
	l.mu.Unlock()

	respond(nil)
}

// SetOn reports a device-side power change, e.g. a wall switch toggle.
func (l *Lamp) SetOn(on bool) {
	l.mu.Lock()
	l.powered = on
	l.mu.Unlock()

	l.on.UpdateValue(on)
}

// On returns the current power state.
func (l *Lamp) On() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.powered
}

// SetBrightness reports a device-side brightness change. It is a no-op on
// a non-dimmable lamp.
func (l *Lamp) SetBrightness(level int64) {
	if l.brightness == nil {
		return
	}

	l.mu.Lock()
	l.level = level
	l.mu.Unlock()

	l.brightness.UpdateValue(level)
}

// Brightness returns the current brightness level.
func (l *Lamp) Brightness() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// IdentifyRuns returns how many identify routines have completed.
func (l *Lamp) IdentifyRuns() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.blinkRuns
}

// toInt64 converts the integer-like values a controller write can carry.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	default:
		return 0, false
	}
}
