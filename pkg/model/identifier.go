package model

import (
	"strings"
	"sync"
)

// IdentifierAssigner hands out the protocol identifiers of an accessory
// tree. Identifiers must be stable: the same key always yields the same
// number, new keys get fresh numbers, and numbers are never reused even
// after the resource they named disappears. Durable implementations persist
// the mapping across restarts.
type IdentifierAssigner interface {
	// AID returns the accessory ID for a bridged accessory's identity
	// UUID. Assigned AIDs start at 2; AID 1 belongs to the published
	// root.
	AID(accessoryUUID string) uint64

	// IID returns the instance ID of a service or one of its
	// characteristics, keyed by the owning accessory's name, the service
	// type and subtype, and the characteristic type (empty for the
	// service itself). Assigned IIDs start at 2 per accessory; IID 1
	// belongs to the Accessory Information service.
	IID(accessoryName, serviceType, subtype, characteristicType string) uint64
}

// MemoryAssigner is an in-memory IdentifierAssigner for tests and trees
// that are never republished. Durable deployments use an assigner that
// persists its state instead.
type MemoryAssigner struct {
	mu      sync.Mutex
	aids    map[string]uint64
	nextAID uint64
	iids    map[string]uint64
	nextIID map[string]uint64
}

var _ IdentifierAssigner = (*MemoryAssigner)(nil)

// NewMemoryAssigner creates an empty assigner.
func NewMemoryAssigner() *MemoryAssigner {
	return &MemoryAssigner{
		aids:    make(map[string]uint64),
		nextAID: 2,
		iids:    make(map[string]uint64),
		nextIID: make(map[string]uint64),
	}
}

// AID implements IdentifierAssigner.
func (m *MemoryAssigner) AID(accessoryUUID string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if aid, ok := m.aids[accessoryUUID]; ok {
		return aid
	}
	aid := m.nextAID
	m.nextAID++
	m.aids[accessoryUUID] = aid
	return aid
}

// IID implements IdentifierAssigner.
func (m *MemoryAssigner) IID(accessoryName, serviceType, subtype, characteristicType string) uint64 {
	key := IdentifierKey(serviceType, subtype, characteristicType)
	m.mu.Lock()
	defer m.mu.Unlock()
	scope, ok := m.nextIID[accessoryName]
	if !ok {
		scope = 2
	}
	full := accessoryName + "|" + key
	if iid, ok := m.iids[full]; ok {
		return iid
	}
	iid := scope
	m.nextIID[accessoryName] = scope + 1
	m.iids[full] = iid
	return iid
}

// IdentifierKey builds the canonical lookup key of a service or
// characteristic within an accessory. Durable assigners use the same key so
// that in-memory and persisted assignments agree.
func IdentifierKey(serviceType, subtype, characteristicType string) string {
	return strings.Join([]string{serviceType, subtype, characteristicType}, "|")
}
