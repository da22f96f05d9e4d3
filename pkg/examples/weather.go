package examples

import (
	"fmt"
	"sync"

	"github.com/hap-protocol/hap-go/pkg/model"
	"github.com/hap-protocol/hap-go/pkg/registry"
)

// WeatherStation represents a multi-service sensor accessory: two
// temperature sensors distinguished by subtype plus a humidity sensor.
// Sensor readings arrive from the device side only, so all values flow
// through UpdateValue and no handlers are registered.
type WeatherStation struct {
	mu sync.RWMutex

	accessory *model.Accessory

	indoor   *model.Characteristic
	outdoor  *model.Characteristic
	humidity *model.Characteristic
}

// WeatherStationConfig contains configuration for creating a WeatherStation.
type WeatherStationConfig struct {
	Name         string
	Manufacturer string
	Model        string
	SerialNumber string
}

// NewWeatherStation creates a new weather station accessory.
func NewWeatherStation(cfg WeatherStationConfig) (*WeatherStation, error) {
	if cfg.Name == "" {
		cfg.Name = "Weather Station"
	}

	accessory, err := model.NewAccessory(cfg.Name, model.GenerateUUID("weather-"+cfg.SerialNumber))
	if err != nil {
		return nil, fmt.Errorf("creating weather station accessory: %w", err)
	}
	accessory.SetCategory(model.CategorySensor)

	info := accessory.Info()
	_ = info.UpdateCharacteristicValue(model.TypeManufacturer, cfg.Manufacturer)
	_ = info.UpdateCharacteristicValue(model.TypeModel, cfg.Model)
	_ = info.UpdateCharacteristicValue(model.TypeSerialNumber, cfg.SerialNumber)

	ws := &WeatherStation{accessory: accessory}

	// Two temperature sensors of the same type need distinct subtypes.
	indoorSvc, err := registry.NewServiceWithSubtype(registry.SvcTemperatureSensor, "indoor")
	if err != nil {
		return nil, err
	}
	indoorSvc.SetPrimary(true)
	if err := accessory.AddService(indoorSvc); err != nil {
		return nil, err
	}
	if ws.indoor, err = indoorSvc.GetCharacteristic(registry.MustCharacteristicType(registry.CharCurrentTemperature)); err != nil {
		return nil, err
	}

	outdoorSvc, err := registry.NewServiceWithSubtype(registry.SvcTemperatureSensor, "outdoor")
	if err != nil {
		return nil, err
	}
	if err := accessory.AddService(outdoorSvc); err != nil {
		return nil, err
	}
	if ws.outdoor, err = outdoorSvc.GetCharacteristic(registry.MustCharacteristicType(registry.CharCurrentTemperature)); err != nil {
		return nil, err
	}

	humiditySvc, err := registry.NewService(registry.SvcHumiditySensor)
	if err != nil {
		return nil, err
	}
	if err := accessory.AddService(humiditySvc); err != nil {
		return nil, err
	}
	if ws.humidity, err = humiditySvc.GetCharacteristic(registry.MustCharacteristicType(registry.CharCurrentRelativeHumidity)); err != nil {
		return nil, err
	}

	return ws, nil
}

// Accessory returns the underlying accessory model.
func (w *WeatherStation) Accessory() *model.Accessory {
	return w.accessory
}

// SetIndoorTemperature reports a new indoor sensor reading.
func (w *WeatherStation) SetIndoorTemperature(celsius float64) {
	w.indoor.UpdateValue(celsius)
}

// SetOutdoorTemperature reports a new outdoor sensor reading.
func (w *WeatherStation) SetOutdoorTemperature(celsius float64) {
	w.outdoor.UpdateValue(celsius)
}

// SetHumidity reports a new relative humidity reading.
func (w *WeatherStation) SetHumidity(percent float64) {
	w.humidity.UpdateValue(percent)
}
