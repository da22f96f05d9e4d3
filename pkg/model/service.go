package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Service errors.
var (
	ErrDuplicateCharacteristic = errors.New("duplicate characteristic type")
	ErrCharacteristicNotFound  = errors.New("characteristic not found")
)

// CharacteristicBlueprint constructs fresh characteristics of a fixed type,
// typically backed by a registry definition. Implementations carry the type
// identity statically so that callers never have to inspect instances.
type CharacteristicBlueprint interface {
	NewCharacteristic() (*Characteristic, error)
}

// Service groups related characteristics into a functional unit, e.g. a
// Lightbulb or a Temperature Sensor. Within a service every active
// characteristic has a unique type; services of the same type within one
// accessory are told apart by subtype.
//
// Besides its active characteristics a service carries optional
// characteristic templates. Templates are invisible to serialization and
// value operations until a lookup names one, which promotes it into the
// active set.
type Service struct {
	mu sync.RWMutex

	// name is the human-readable display name.
	name string

	// typ is the normalized type UUID.
	typ string

	// subtype disambiguates same-typed services within an accessory.
	subtype string

	// iid is the protocol instance ID, 0 until assigned.
	iid uint64

	primary bool
	hidden  bool

	// characteristics is the active set in serialization order.
	characteristics []*Characteristic

	// optional holds not yet promoted templates.
	optional []*Characteristic

	// changeSink and configSink forward events to the owning accessory.
	changeSink func(*ChangeEvent)
	configSink func(*ConfigurationEvent)
}

// NewService creates a service with the given display name and type. The
// type may be a full UUID or the short form of an Apple-defined type.
// Subtype may be empty.
func NewService(name, typeUUID, subtype string) (*Service, error) {
	normalized, err := NormalizeUUID(typeUUID)
	if err != nil {
		return nil, fmt.Errorf("service %q: %w", name, err)
	}
	return &Service{
		name:    name,
		typ:     normalized,
		subtype: subtype,
	}, nil
}

// Name returns the display name.
func (s *Service) Name() string {
	return s.name
}

// Type returns the normalized type UUID.
func (s *Service) Type() string {
	return s.typ
}

// Subtype returns the subtype, empty unless set at construction.
func (s *Service) Subtype() string {
	return s.subtype
}

// IID returns the assigned instance ID, 0 before assignment.
func (s *Service) IID() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.iid
}

// Primary reports whether the service is marked as the accessory's primary
// service.
func (s *Service) Primary() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.primary
}

// SetPrimary marks the service as primary and returns it for chaining.
func (s *Service) SetPrimary(primary bool) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primary = primary
	return s
}

// Hidden reports whether the service is hidden from user interfaces.
func (s *Service) Hidden() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hidden
}

// SetHidden marks the service as hidden and returns it for chaining.
func (s *Service) SetHidden(hidden bool) *Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden = hidden
	return s
}

// Characteristics returns the active characteristics in serialization order.
func (s *Service) Characteristics() []*Characteristic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Characteristic(nil), s.characteristics...)
}

// OptionalCharacteristics returns the not yet promoted templates.
func (s *Service) OptionalCharacteristics() []*Characteristic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Characteristic(nil), s.optional...)
}

// AddCharacteristic adds c to the active set. It fails with
// ErrDuplicateCharacteristic if an active characteristic of the same type
// already exists.
func (s *Service) AddCharacteristic(c *Characteristic) error {
	s.mu.Lock()
	if err := s.addLocked(c); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.notifyConfigChanged()
	return nil
}

// AddCharacteristicFromBlueprint instantiates b and adds the result to the
// active set, returning the new characteristic.
func (s *Service) AddCharacteristicFromBlueprint(b CharacteristicBlueprint) (*Characteristic, error) {
	c, err := b.NewCharacteristic()
	if err != nil {
		return nil, err
	}
	if err := s.AddCharacteristic(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddOptionalCharacteristic registers c as a template. Templates do not
// appear in serialized output and are not found by value operations until a
// lookup promotes them.
func (s *Service) AddOptionalCharacteristic(c *Characteristic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.optional = append(s.optional, c)
}

// RemoveCharacteristic removes c from the active set, comparing by identity.
// It fails with ErrCharacteristicNotFound if c is not an active member.
func (s *Service) RemoveCharacteristic(c *Characteristic) error {
	s.mu.Lock()
	found := false
	for i, existing := range s.characteristics {
		if existing == c {
			s.characteristics = append(s.characteristics[:i], s.characteristics[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return fmt.Errorf("%w: %q", ErrCharacteristicNotFound, c.Name())
	}
	c.bindDispatch(nil)
	s.notifyConfigChanged()
	return nil
}

// GetCharacteristic finds a characteristic by selector: either an exact
// display name or a type identifier (full UUID or short form). Active
// characteristics are searched first; a selector matching an optional
// template promotes it into the active set.
func (s *Service) GetCharacteristic(selector string) (*Characteristic, error) {
	typeUUID, _ := NormalizeUUID(selector)

	s.mu.Lock()
	if c := matchCharacteristic(s.characteristics, selector, typeUUID); c != nil {
		s.mu.Unlock()
		return c, nil
	}
	c := matchCharacteristic(s.optional, selector, typeUUID)
	if c == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrCharacteristicNotFound, selector)
	}
	for i, candidate := range s.optional {
		if candidate == c {
			s.optional = append(s.optional[:i], s.optional[i+1:]...)
			break
		}
	}
	if err := s.addLocked(c); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.mu.Unlock()
	s.notifyConfigChanged()
	return c, nil
}

// TestCharacteristic reports whether a selector resolves, without promoting
// optional templates.
func (s *Service) TestCharacteristic(selector string) bool {
	typeUUID, _ := NormalizeUUID(selector)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matchCharacteristic(s.characteristics, selector, typeUUID) != nil ||
		matchCharacteristic(s.optional, selector, typeUUID) != nil
}

// SetCharacteristicValue resolves selector and writes value through the
// characteristic's write path, including its write handler. Handler errors
// are not reported back; use Characteristic.Set for that.
func (s *Service) SetCharacteristicValue(ctx context.Context, selector string, value any) error {
	c, err := s.GetCharacteristic(selector)
	if err != nil {
		return err
	}
	c.Set(ctx, value, WriteRequest{}, nil)
	return nil
}

// UpdateCharacteristicValue resolves selector and commits value directly,
// bypassing the write handler.
func (s *Service) UpdateCharacteristicValue(selector string, value any) error {
	c, err := s.GetCharacteristic(selector)
	if err != nil {
		return err
	}
	c.UpdateValue(value)
	return nil
}

// AssignIdentifiers assigns instance IDs to the service and its active
// characteristics. The Accessory Information service always gets IID 1;
// everything else is assigned through the assigner, keyed by the owning
// accessory's name so that IDs stay stable across restarts.
func (s *Service) AssignIdentifiers(assigner IdentifierAssigner, accessoryName string) {
	s.mu.Lock()
	if s.typ == TypeAccessoryInformation {
		s.iid = AccessoryInformationIID
	} else {
		s.iid = assigner.IID(accessoryName, s.typ, s.subtype, "")
	}
	characteristics := append([]*Characteristic(nil), s.characteristics...)
	typ, subtype := s.typ, s.subtype
	s.mu.Unlock()

	for _, c := range characteristics {
		c.setIID(assigner.IID(accessoryName, typ, subtype, c.Type()))
	}
}

// addLocked appends c to the active set. Caller holds s.mu.
func (s *Service) addLocked(c *Characteristic) error {
	for _, existing := range s.characteristics {
		if existing.Type() == c.Type() {
			return fmt.Errorf("%w: %s (%s)", ErrDuplicateCharacteristic, ShortUUID(c.Type()), c.Name())
		}
	}
	s.characteristics = append(s.characteristics, c)
	c.bindDispatch(s.dispatchCharacteristicChange)
	return nil
}

// dispatchCharacteristicChange annotates ev with the service and forwards it
// to the owning accessory.
func (s *Service) dispatchCharacteristicChange(ev *ChangeEvent) {
	s.mu.RLock()
	sink := s.changeSink
	s.mu.RUnlock()
	ev.Service = s
	if sink != nil {
		sink(ev)
	}
}

// notifyConfigChanged reports a membership change to the owning accessory.
func (s *Service) notifyConfigChanged() {
	s.mu.RLock()
	sink := s.configSink
	s.mu.RUnlock()
	if sink != nil {
		sink(&ConfigurationEvent{Service: s})
	}
}

// bindSinks points service events at the owning accessory. Called with nils
// when the service is removed.
func (s *Service) bindSinks(change func(*ChangeEvent), config func(*ConfigurationEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeSink = change
	s.configSink = config
}

// matchCharacteristic returns the first characteristic matching selector by
// display name or normalized type UUID. typeUUID is empty if the selector is
// not a valid type identifier.
func matchCharacteristic(list []*Characteristic, selector, typeUUID string) *Characteristic {
	for _, c := range list {
		if c.Name() == selector || (typeUUID != "" && c.Type() == typeUUID) {
			return c
		}
	}
	return nil
}
