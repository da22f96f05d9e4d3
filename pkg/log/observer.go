package log

import (
	"time"

	"github.com/hap-protocol/hap-go/pkg/model"
)

// AccessoryObserver converts accessory tree events into log events. Attach
// it to an accessory or bridge with Subscribe:
//
//	logger, _ := log.NewFileLogger("bridge.hlog")
//	bridge.Subscribe(log.NewAccessoryObserver(logger))
type AccessoryObserver struct {
	logger Logger
}

// Compile-time interface satisfaction check.
var _ model.Observer = (*AccessoryObserver)(nil)

// NewAccessoryObserver creates an observer forwarding to logger. A nil
// logger discards all events.
func NewAccessoryObserver(logger Logger) *AccessoryObserver {
	if logger == nil {
		logger = NoopLogger{}
	}
	return &AccessoryObserver{logger: logger}
}

// CharacteristicChanged implements model.Observer.
func (o *AccessoryObserver) CharacteristicChanged(ev *model.ChangeEvent) {
	event := Event{
		Timestamp: time.Now(),
		Category:  CategoryChange,
		ConnID:    ev.ConnID,
		Change: &ChangeEventData{
			CharacteristicType: ev.Characteristic.Type(),
			CharacteristicName: ev.Characteristic.Name(),
			IID:                ev.Characteristic.IID(),
			OldValue:           ev.OldValue,
			NewValue:           ev.NewValue,
		},
	}
	if ev.Service != nil {
		event.Change.ServiceType = ev.Service.Type()
		event.Change.ServiceName = ev.Service.Name()
		event.Change.Subtype = ev.Service.Subtype()
	}
	if ev.Accessory != nil {
		event.Accessory = ev.Accessory.Name()
		event.AccessoryUUID = ev.Accessory.UUID()
		event.AID = ev.Accessory.AID()
	}
	o.logger.Log(event)
}

// ConfigurationChanged implements model.Observer.
func (o *AccessoryObserver) ConfigurationChanged(ev *model.ConfigurationEvent) {
	event := Event{
		Timestamp: time.Now(),
		Category:  CategoryConfig,
		Config: &ConfigEventData{
			Signature: ev.Signature,
		},
	}
	if ev.Service != nil {
		event.Config.ServiceType = ev.Service.Type()
		event.Config.ServiceName = ev.Service.Name()
	}
	if ev.Accessory != nil {
		event.Accessory = ev.Accessory.Name()
		event.AccessoryUUID = ev.Accessory.UUID()
		event.AID = ev.Accessory.AID()
	}
	o.logger.Log(event)
}

// AccessoryIdentified implements model.Observer.
func (o *AccessoryObserver) AccessoryIdentified(a *model.Accessory, req model.IdentifyRequest) {
	o.logger.Log(Event{
		Timestamp:     time.Now(),
		Category:      CategoryIdentify,
		Accessory:     a.Name(),
		AccessoryUUID: a.UUID(),
		AID:           a.AID(),
		ConnID:        req.ConnID,
	})
}
