package model

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Accessory errors.
var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrDuplicateService = errors.New("service already added")
)

// IdentifyResponder acknowledges an identify routine. It is honored at most
// once; later invocations are silently ignored.
type IdentifyResponder func(err error)

// IdentifyHandler reacts to the protocol identify routine, typically by
// blinking an LED. It must call respond exactly once, from any goroutine.
type IdentifyHandler func(ctx context.Context, req IdentifyRequest, respond IdentifyResponder)

// Accessory represents a single physical or logical device: a collection of
// services under one identity UUID. Every accessory carries the Accessory
// Information service from construction.
//
// All methods are safe for concurrent use.
type Accessory struct {
	mu sync.RWMutex

	// name is the human-readable display name.
	name string

	// uuid is the normalized identity UUID. It never changes and keys the
	// accessory's AID across restarts.
	uuid string

	// aid is the protocol accessory ID, 0 until assigned.
	aid uint64

	category  Category
	reachable bool

	// bridged is true while the accessory is a child of a bridge.
	bridged bool

	// isBridge is true for accessories created through NewBridge.
	isBridge bool

	// services in serialization order; services[0] is always the
	// Accessory Information service.
	services []*Service

	identifyHandler IdentifyHandler
	observers       []Observer

	configSignature string
}

// NewAccessory creates an accessory with the given display name and identity
// UUID, pre-populated with the Accessory Information service. Use
// GenerateUUID to derive a stable identity for devices without one.
func NewAccessory(name, identityUUID string) (*Accessory, error) {
	normalized, err := NormalizeUUID(identityUUID)
	if err != nil {
		return nil, fmt.Errorf("accessory %q: %w", name, err)
	}
	a := &Accessory{
		name:      name,
		uuid:      normalized,
		category:  CategoryOther,
		reachable: true,
	}
	if err := a.AddService(NewAccessoryInformationService(name)); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the display name.
func (a *Accessory) Name() string {
	return a.name
}

// UUID returns the normalized identity UUID.
func (a *Accessory) UUID() string {
	return a.uuid
}

// AID returns the assigned accessory ID, 0 before assignment.
func (a *Accessory) AID() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.aid
}

// Category returns the accessory category.
func (a *Accessory) Category() Category {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.category
}

// SetCategory sets the accessory category and returns the accessory for
// chaining.
func (a *Accessory) SetCategory(c Category) *Accessory {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.category = c
	return a
}

// Reachable reports whether the accessory currently considers itself
// reachable. New accessories start reachable.
func (a *Accessory) Reachable() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.reachable
}

// SetReachable records the accessory's reachability. The Bridging State
// service of a bridged child is seeded from this at the time the child is
// added to the bridge, not tracked live.
func (a *Accessory) SetReachable(reachable bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reachable = reachable
}

// Bridged reports whether the accessory is a child of a bridge.
func (a *Accessory) Bridged() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.bridged
}

// IsBridge reports whether the accessory was created as a bridge.
func (a *Accessory) IsBridge() bool {
	return a.isBridge
}

// Services returns the services in serialization order.
func (a *Accessory) Services() []*Service {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]*Service(nil), a.services...)
}

// AddService attaches s to the accessory. Adding the same service instance
// twice fails with ErrDuplicateService.
func (a *Accessory) AddService(s *Service) error {
	a.mu.Lock()
	for _, existing := range a.services {
		if existing == s {
			a.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrDuplicateService, s.Name())
		}
	}
	a.services = append(a.services, s)
	a.mu.Unlock()

	s.bindSinks(a.dispatchCharacteristicChange, a.dispatchServiceConfigChange)
	a.notifyConfigurationChanged(&ConfigurationEvent{Accessory: a, Service: s})
	return nil
}

// RemoveService detaches s, comparing by identity. It fails with
// ErrServiceNotFound if s is not attached.
func (a *Accessory) RemoveService(s *Service) error {
	a.mu.Lock()
	found := false
	for i, existing := range a.services {
		if existing == s {
			a.services = append(a.services[:i], a.services[i+1:]...)
			found = true
			break
		}
	}
	a.mu.Unlock()
	if !found {
		return fmt.Errorf("%w: %q", ErrServiceNotFound, s.Name())
	}
	s.bindSinks(nil, nil)
	a.notifyConfigurationChanged(&ConfigurationEvent{Accessory: a, Service: s})
	return nil
}

// GetService finds a service by selector: either an exact display name or a
// type identifier (full UUID or short form). The first match in
// serialization order wins.
func (a *Accessory) GetService(selector string) (*Service, error) {
	typeUUID, _ := NormalizeUUID(selector)
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, s := range a.services {
		if s.Name() == selector || (typeUUID != "" && s.Type() == typeUUID) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, selector)
}

// Info returns the accessory's Accessory Information service.
func (a *Accessory) Info() *Service {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.services[0]
}

// SetIdentifyHandler installs the identify handler. A nil handler makes
// identify succeed immediately.
func (a *Accessory) SetIdentifyHandler(h IdentifyHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identifyHandler = h
}

// Identify runs the identify routine. With a handler installed, the handler
// decides the outcome; otherwise identify succeeds immediately. On success
// observers are notified before deliver runs. deliver may be nil.
func (a *Accessory) Identify(ctx context.Context, req IdentifyRequest, deliver IdentifyResponder) {
	a.mu.RLock()
	h := a.identifyHandler
	a.mu.RUnlock()

	if h == nil {
		a.notifyIdentified(req)
		if deliver != nil {
			deliver(nil)
		}
		return
	}

	l := newLatch()
	h(ctx, req, func(err error) {
		if !l.acquire() {
			return
		}
		if err != nil {
			if deliver != nil {
				deliver(err)
			}
			return
		}
		a.notifyIdentified(req)
		if deliver != nil {
			deliver(nil)
		}
	})
}

// Subscribe registers an observer for the accessory's events.
func (a *Accessory) Subscribe(o Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, o)
}

// Unsubscribe removes a previously registered observer.
func (a *Accessory) Unsubscribe(o Observer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, existing := range a.observers {
		if existing == o {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return
		}
	}
}

// AssignIdentifiers assigns the accessory's AID and the instance IDs of all
// services and characteristics. Standalone accessories and bridges take AID
// 1; bridged children are assigned through the assigner, keyed by their
// identity UUID.
func (a *Accessory) AssignIdentifiers(assigner IdentifierAssigner) {
	a.mu.Lock()
	if a.bridged {
		a.aid = assigner.AID(a.uuid)
	} else {
		a.aid = 1
	}
	services := append([]*Service(nil), a.services...)
	name := a.name
	a.mu.Unlock()

	for _, s := range services {
		s.AssignIdentifiers(assigner, name)
	}
}

// ConfigSignature returns the signature from the last recompute, empty
// before the first one.
func (a *Accessory) ConfigSignature() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.configSignature
}

// RecomputeConfiguration recomputes the configuration signature over the
// accessory's value-free serialized form, stores it, and reports it to
// observers. The signature changes exactly when the serialized shape of the
// tree changes.
func (a *Accessory) RecomputeConfiguration() string {
	sig := computeSignature(a.ToHAPAccessories(ToHAPOptions{OmitValues: true}))
	a.mu.Lock()
	a.configSignature = sig
	a.mu.Unlock()
	a.notifyConfigurationChanged(&ConfigurationEvent{Accessory: a, Signature: sig})
	return sig
}

// setBridged marks the accessory as (un)bridged.
func (a *Accessory) setBridged(bridged bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bridged = bridged
}

// storeSignature records a signature computed at the bridge level.
func (a *Accessory) storeSignature(sig string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configSignature = sig
}

// dispatchCharacteristicChange annotates ev with the accessory and notifies
// observers.
func (a *Accessory) dispatchCharacteristicChange(ev *ChangeEvent) {
	ev.Accessory = a
	for _, o := range a.snapshotObservers() {
		o.CharacteristicChanged(ev)
	}
}

// dispatchServiceConfigChange annotates ev with the accessory and notifies
// observers.
func (a *Accessory) dispatchServiceConfigChange(ev *ConfigurationEvent) {
	ev.Accessory = a
	a.notifyConfigurationChanged(ev)
}

func (a *Accessory) notifyConfigurationChanged(ev *ConfigurationEvent) {
	for _, o := range a.snapshotObservers() {
		o.ConfigurationChanged(ev)
	}
}

func (a *Accessory) notifyIdentified(req IdentifyRequest) {
	for _, o := range a.snapshotObservers() {
		o.AccessoryIdentified(a, req)
	}
}

// snapshotObservers copies the observer list so notifications run without
// holding the lock.
func (a *Accessory) snapshotObservers() []Observer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]Observer(nil), a.observers...)
}
