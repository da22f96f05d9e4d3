package model

import (
	"errors"
	"fmt"
	"sync"
)

// Bridge errors.
var (
	ErrNestedBridge       = errors.New("bridges cannot be bridged")
	ErrDuplicateAccessory = errors.New("accessory already bridged")
	ErrAccessoryNotFound  = errors.New("accessory not found")
)

// Bridge is an accessory that hosts child accessories and publishes them as
// one tree. It relays the children's events to its own observers, ensures
// each child carries a Bridging State service, and recomputes the
// configuration signature when children come and go.
type Bridge struct {
	*Accessory

	cmu      sync.RWMutex
	children []*Accessory

	// relays maps each child to the observer forwarding its events.
	relays map[*Accessory]*childRelay
}

// NewBridge creates a bridge accessory with the given display name and
// identity UUID.
func NewBridge(name, identityUUID string) (*Bridge, error) {
	a, err := NewAccessory(name, identityUUID)
	if err != nil {
		return nil, err
	}
	a.isBridge = true
	a.category = CategoryBridge
	return &Bridge{
		Accessory: a,
		relays:    make(map[*Accessory]*childRelay),
	}, nil
}

// Children returns the bridged accessories in the order they were added.
func (b *Bridge) Children() []*Accessory {
	b.cmu.RLock()
	defer b.cmu.RUnlock()
	return append([]*Accessory(nil), b.children...)
}

// ChildByUUID finds a bridged accessory by identity UUID.
func (b *Bridge) ChildByUUID(identityUUID string) (*Accessory, error) {
	normalized, err := NormalizeUUID(identityUUID)
	if err != nil {
		return nil, err
	}
	b.cmu.RLock()
	defer b.cmu.RUnlock()
	for _, child := range b.children {
		if child.UUID() == normalized {
			return child, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrAccessoryNotFound, normalized)
}

// AddChild attaches child to the bridge. Bridges cannot be nested and child
// identity UUIDs must be unique within the bridge.
//
// The child is marked as bridged, its Bridging State service is created if
// absent and seeded from the child's identity, reachability and category as
// of this call, and its events are relayed to the bridge's observers. Unless
// deferRecompute is set, the configuration signature is recomputed
// immediately.
func (b *Bridge) AddChild(child *Accessory, deferRecompute bool) error {
	if child.IsBridge() {
		return fmt.Errorf("%w: %q", ErrNestedBridge, child.Name())
	}

	relay := &childRelay{bridge: b, child: child}
	b.cmu.Lock()
	for _, existing := range b.children {
		if existing.UUID() == child.UUID() {
			b.cmu.Unlock()
			return fmt.Errorf("%w: %s", ErrDuplicateAccessory, child.UUID())
		}
	}
	b.children = append(b.children, child)
	b.relays[child] = relay
	b.cmu.Unlock()

	child.setBridged(true)
	seedBridgingState(child)
	child.Subscribe(relay)

	if !deferRecompute {
		b.RecomputeConfiguration()
	}
	return nil
}

// AddChildren attaches all children, recomputing the configuration
// signature once at the end. The first failure stops the loop; children
// attached up to that point stay attached.
func (b *Bridge) AddChildren(children []*Accessory) error {
	defer b.RecomputeConfiguration()
	for _, child := range children {
		if err := b.AddChild(child, true); err != nil {
			return err
		}
	}
	return nil
}

// RemoveChild detaches the bridged accessory with child's identity UUID.
// The detached accessory keeps its Bridging State service but is unmarked as
// bridged and its events are no longer relayed. Unless deferRecompute is
// set, the configuration signature is recomputed immediately.
func (b *Bridge) RemoveChild(child *Accessory, deferRecompute bool) error {
	if child.IsBridge() {
		return fmt.Errorf("%w: %q", ErrNestedBridge, child.Name())
	}

	b.cmu.Lock()
	var detached *Accessory
	for i, existing := range b.children {
		if existing.UUID() == child.UUID() {
			detached = existing
			b.children = append(b.children[:i], b.children[i+1:]...)
			break
		}
	}
	if detached == nil {
		b.cmu.Unlock()
		return fmt.Errorf("%w: %s", ErrAccessoryNotFound, child.UUID())
	}
	relay := b.relays[detached]
	delete(b.relays, detached)
	b.cmu.Unlock()

	if relay != nil {
		detached.Unsubscribe(relay)
	}
	detached.setBridged(false)

	if !deferRecompute {
		b.RecomputeConfiguration()
	}
	return nil
}

// RemoveChildren detaches all listed children, recomputing the
// configuration signature once at the end. The first failure stops the
// loop.
func (b *Bridge) RemoveChildren(children []*Accessory) error {
	defer b.RecomputeConfiguration()
	for _, child := range children {
		if err := b.RemoveChild(child, true); err != nil {
			return err
		}
	}
	return nil
}

// AssignIdentifiers assigns the bridge's own identifiers and those of all
// children.
func (b *Bridge) AssignIdentifiers(assigner IdentifierAssigner) {
	b.Accessory.AssignIdentifiers(assigner)
	for _, child := range b.Children() {
		child.AssignIdentifiers(assigner)
	}
}

// RecomputeConfiguration recomputes the configuration signature over the
// value-free serialized form of the bridge and all children, stores it, and
// reports it to observers.
func (b *Bridge) RecomputeConfiguration() string {
	sig := computeSignature(b.ToHAPAccessories(ToHAPOptions{OmitValues: true}))
	b.storeSignature(sig)
	b.notifyConfigurationChanged(&ConfigurationEvent{Accessory: b.Accessory, Signature: sig})
	return sig
}

// seedBridgingState ensures child carries a Bridging State service and
// seeds it from the child's current identity, reachability and category.
func seedBridgingState(child *Accessory) {
	state, err := child.GetService(TypeBridgingState)
	if err != nil {
		state = NewBridgingStateService()
		if err := child.AddService(state); err != nil {
			return
		}
	}
	_ = state.UpdateCharacteristicValue(TypeAccessoryIdentifier, child.UUID())
	_ = state.UpdateCharacteristicValue(TypeReachable, child.Reachable())
	_ = state.UpdateCharacteristicValue(TypeCategory, int64(child.Category()))
}

// childRelay forwards a bridged child's events to the bridge's observers.
type childRelay struct {
	bridge *Bridge
	child  *Accessory
}

func (r *childRelay) CharacteristicChanged(ev *ChangeEvent) {
	for _, o := range r.bridge.snapshotObservers() {
		o.CharacteristicChanged(ev)
	}
}

func (r *childRelay) ConfigurationChanged(ev *ConfigurationEvent) {
	for _, o := range r.bridge.snapshotObservers() {
		o.ConfigurationChanged(ev)
	}
}

func (r *childRelay) AccessoryIdentified(a *Accessory, req IdentifyRequest) {
	for _, o := range r.bridge.snapshotObservers() {
		o.AccessoryIdentified(a, req)
	}
}
