package model

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Props holds the static metadata of a characteristic: wire format, unit,
// permissions and numeric constraints. Range bounds never reject values;
// they are applied when the value is serialized.
type Props struct {
	Format Format
	Unit   Unit
	Perms  []Perm

	// MinValue, MaxValue bound numeric values at serialization time.
	MinValue *float64
	MaxValue *float64

	// MinStep implies the decimal precision floats are rounded to.
	MinStep *float64

	// ValidValues enumerates the accepted values of an enum-like
	// characteristic, ValidValueRange bounds them as [start, end].
	ValidValues     []float64
	ValidValueRange *[2]float64
}

func (p Props) clone() Props {
	clone := p
	if p.Perms != nil {
		clone.Perms = append([]Perm(nil), p.Perms...)
	}
	if p.MinValue != nil {
		v := *p.MinValue
		clone.MinValue = &v
	}
	if p.MaxValue != nil {
		v := *p.MaxValue
		clone.MaxValue = &v
	}
	if p.MinStep != nil {
		v := *p.MinStep
		clone.MinStep = &v
	}
	if p.ValidValues != nil {
		clone.ValidValues = append([]float64(nil), p.ValidValues...)
	}
	if p.ValidValueRange != nil {
		r := *p.ValidValueRange
		clone.ValidValueRange = &r
	}
	return clone
}

// ReadResponder delivers the result of a device-side read. Each responder is
// honored at most once; later invocations are silently ignored.
type ReadResponder func(value any, err error)

// ReadHandler intercepts reads of a characteristic, typically to fetch a
// fresh value from hardware. It must call respond exactly once, from any
// goroutine.
type ReadHandler func(ctx context.Context, req ReadRequest, respond ReadResponder)

// WriteResponder acknowledges a device-side write. Each responder is honored
// at most once; later invocations are silently ignored.
type WriteResponder func(err error)

// WriteHandler intercepts writes of a characteristic, typically to apply the
// value to hardware before it is committed. It must call respond exactly
// once, from any goroutine.
type WriteHandler func(ctx context.Context, value any, req WriteRequest, respond WriteResponder)

// Characteristic is a single typed value within a service, the unit of read,
// write and notification in HAP.
//
// Reads and writes are not serialized against each other: concurrent calls
// may interleave and the last commit wins. All methods are safe for
// concurrent use.
type Characteristic struct {
	mu sync.RWMutex

	// name is the human-readable display name.
	name string

	// typ is the normalized type UUID.
	typ string

	// iid is the protocol instance ID, 0 until assigned.
	iid uint64

	props Props
	value any

	readHandler  ReadHandler
	writeHandler WriteHandler

	// dispatch forwards committed changes to the owning service. Nil
	// while the characteristic is not part of a service.
	dispatch func(*ChangeEvent)
}

// NewCharacteristic creates a characteristic with the given display name and
// type. The type may be a full UUID or the short form of an Apple-defined
// type. The cached value starts at the format default.
func NewCharacteristic(name, typeUUID string, props Props) (*Characteristic, error) {
	normalized, err := NormalizeUUID(typeUUID)
	if err != nil {
		return nil, fmt.Errorf("characteristic %q: %w", name, err)
	}
	p := props.clone()
	return &Characteristic{
		name:  name,
		typ:   normalized,
		props: p,
		value: defaultValue(p.Format, p.MinValue),
	}, nil
}

// Name returns the display name.
func (c *Characteristic) Name() string {
	return c.name
}

// Type returns the normalized type UUID.
func (c *Characteristic) Type() string {
	return c.typ
}

// IID returns the assigned instance ID, 0 before assignment.
func (c *Characteristic) IID() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.iid
}

// Props returns a copy of the characteristic's metadata.
func (c *Characteristic) Props() Props {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.props.clone()
}

// SetProps merges the set fields of p into the characteristic's metadata and
// returns the characteristic for chaining. Zero-valued fields of p (empty
// format or unit, nil slices and pointers) leave the current metadata
// untouched.
func (c *Characteristic) SetProps(p Props) *Characteristic {
	merged := p.clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	if merged.Format != "" {
		c.props.Format = merged.Format
	}
	if merged.Unit != "" {
		c.props.Unit = merged.Unit
	}
	if merged.Perms != nil {
		c.props.Perms = merged.Perms
	}
	if merged.MinValue != nil {
		c.props.MinValue = merged.MinValue
	}
	if merged.MaxValue != nil {
		c.props.MaxValue = merged.MaxValue
	}
	if merged.MinStep != nil {
		c.props.MinStep = merged.MinStep
	}
	if merged.ValidValues != nil {
		c.props.ValidValues = merged.ValidValues
	}
	if merged.ValidValueRange != nil {
		c.props.ValidValueRange = merged.ValidValueRange
	}
	return c
}

// Value returns the cached value without consulting the read handler.
func (c *Characteristic) Value() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// DefaultValue returns the format-appropriate default: false, empty string,
// empty list, or the lower range bound (zero when unbounded).
func (c *Characteristic) DefaultValue() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return defaultValue(c.props.Format, c.props.MinValue)
}

// SetReadHandler installs the device-side read handler. A nil handler
// restores the default behavior of answering reads from the cache.
func (c *Characteristic) SetReadHandler(h ReadHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readHandler = h
}

// SetWriteHandler installs the device-side write handler. A nil handler
// restores the default behavior of committing writes unconditionally.
func (c *Characteristic) SetWriteHandler(h WriteHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writeHandler = h
}

// Get reads the characteristic. Without a read handler, deliver is invoked
// immediately with the cached value. With a handler, the handler decides:
// on success its value is committed to the cache, delivered, and a change
// event is emitted if the value differs; on error deliver receives the error
// and the cache is untouched.
//
// A nil value from the handler is replaced by the format default before it
// is committed. deliver may be nil.
func (c *Characteristic) Get(ctx context.Context, req ReadRequest, deliver ReadResponder) {
	c.mu.RLock()
	h := c.readHandler
	cached := c.value
	c.mu.RUnlock()

	if h == nil {
		if deliver != nil {
			deliver(cached, nil)
		}
		return
	}

	l := newLatch()
	h(ctx, req, func(value any, err error) {
		if !l.acquire() {
			return
		}
		if err != nil {
			if deliver != nil {
				deliver(nil, err)
			}
			return
		}
		ev, stored := c.commitValue(value, req.Origin, req.ConnID)
		if deliver != nil {
			deliver(stored, nil)
		}
		c.dispatchEvent(ev)
	})
}

// Set writes the characteristic. Without a write handler the value is
// committed unconditionally. With a handler, the handler decides: on success
// the value is committed and a change event emitted; on error the cache is
// untouched and deliver receives the error.
//
// Permissions are not enforced here: a write to a characteristic without
// PermWrite still commits. Transports reject such writes before they reach
// the model.
//
// A nil value is replaced by the format default before it is committed.
// deliver may be nil.
func (c *Characteristic) Set(ctx context.Context, value any, req WriteRequest, deliver WriteResponder) {
	c.mu.RLock()
	h := c.writeHandler
	c.mu.RUnlock()

	if h == nil {
		ev, _ := c.commitValue(value, req.Origin, req.ConnID)
		c.dispatchEvent(ev)
		if deliver != nil {
			deliver(nil)
		}
		return
	}

	l := newLatch()
	h(ctx, value, req, func(err error) {
		if !l.acquire() {
			return
		}
		if err != nil {
			if deliver != nil {
				deliver(err)
			}
			return
		}
		ev, _ := c.commitValue(value, req.Origin, req.ConnID)
		c.dispatchEvent(ev)
		if deliver != nil {
			deliver(nil)
		}
	})
}

// UpdateValue commits a device-side value change, bypassing the write
// handler. A change event is emitted if the value differs from the cache.
func (c *Characteristic) UpdateValue(value any) {
	ev, _ := c.commitValue(value, nil, "")
	c.dispatchEvent(ev)
}

// UpdateValueWithOrigin is UpdateValue with an opaque origin token that is
// threaded through to the resulting change event.
func (c *Characteristic) UpdateValueWithOrigin(value, origin any) {
	ev, _ := c.commitValue(value, origin, "")
	c.dispatchEvent(ev)
}

// commitValue stores value (nil replaced by the format default) and returns
// the change event to dispatch, or nil if the value did not change.
func (c *Characteristic) commitValue(value, origin any, connID string) (*ChangeEvent, any) {
	c.mu.Lock()
	if value == nil {
		value = defaultValue(c.props.Format, c.props.MinValue)
	}
	old := c.value
	c.value = value
	changed := !valuesEqual(old, value)
	c.mu.Unlock()

	if !changed {
		return nil, value
	}
	return &ChangeEvent{
		Characteristic: c,
		OldValue:       old,
		NewValue:       value,
		Origin:         origin,
		ConnID:         connID,
	}, value
}

// dispatchEvent forwards ev to the owning service, if any.
func (c *Characteristic) dispatchEvent(ev *ChangeEvent) {
	if ev == nil {
		return
	}
	c.mu.RLock()
	dispatch := c.dispatch
	c.mu.RUnlock()
	if dispatch != nil {
		dispatch(ev)
	}
}

// bindDispatch points committed changes at the owning service. Called with
// nil when the characteristic is removed from its service.
func (c *Characteristic) bindDispatch(fn func(*ChangeEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatch = fn
}

func (c *Characteristic) setIID(iid uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.iid = iid
}

// latch guards a responder so that it resolves at most once.
type latch struct {
	fired atomic.Bool
}

func newLatch() *latch {
	return &latch{}
}

// acquire returns true exactly once.
func (l *latch) acquire() bool {
	return l.fired.CompareAndSwap(false, true)
}
