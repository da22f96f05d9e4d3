package history

import (
	"context"
	"time"

	"github.com/hap-protocol/hap-go/pkg/log"
	"github.com/hap-protocol/hap-go/pkg/model"
)

// Recorder mirrors characteristic changes into a Store. It implements
// model.Observer, so it can be subscribed to an accessory or bridge next
// to other observers.
//
// Observer callbacks carry no context, so writes use context.Background().
// Write failures are reported through the configured log.Logger as error
// events rather than returned; the change itself has already been
// committed to the model by the time the recorder runs.
type Recorder struct {
	store  *Store
	logger log.Logger
}

// Compile-time interface satisfaction check.
var _ model.Observer = (*Recorder)(nil)

// NewRecorder returns a Recorder writing to store. A nil logger discards
// failure reports.
func NewRecorder(store *Store, logger log.Logger) *Recorder {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Recorder{store: store, logger: logger}
}

// CharacteristicChanged records the change in the journal.
func (r *Recorder) CharacteristicChanged(ev *model.ChangeEvent) {
	if ev == nil || ev.Characteristic == nil {
		return
	}

	entry := Entry{
		CharacteristicType: ev.Characteristic.Type(),
		CharacteristicName: ev.Characteristic.Name(),
		IID:                ev.Characteristic.IID(),
		OldValue:           ev.OldValue,
		NewValue:           ev.NewValue,
		ConnID:             ev.ConnID,
	}
	if ev.Service != nil {
		entry.ServiceType = ev.Service.Type()
		entry.ServiceName = ev.Service.Name()
		entry.Subtype = ev.Service.Subtype()
	}
	if ev.Accessory != nil {
		entry.Accessory = ev.Accessory.Name()
		entry.AccessoryUUID = ev.Accessory.UUID()
		entry.AID = ev.Accessory.AID()
	}

	if err := r.store.Record(context.Background(), entry); err != nil {
		r.logger.Log(log.Event{
			Timestamp:     time.Now(),
			Category:      log.CategoryError,
			Accessory:     entry.Accessory,
			AccessoryUUID: entry.AccessoryUUID,
			AID:           entry.AID,
			ConnID:        entry.ConnID,
			Error: &log.ErrorEventData{
				Op:      "history.record",
				Message: err.Error(),
			},
		})
	}
}

// ConfigurationChanged is ignored; the journal tracks value changes only.
func (r *Recorder) ConfigurationChanged(*model.ConfigurationEvent) {}

// AccessoryIdentified is ignored.
func (r *Recorder) AccessoryIdentified(*model.Accessory, model.IdentifyRequest) {}
