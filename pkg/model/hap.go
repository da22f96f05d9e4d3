package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
)

// ToHAPOptions controls serialization of the accessory tree.
type ToHAPOptions struct {
	// OmitValues leaves characteristic values out of the output. Used
	// when computing configuration signatures, which must depend on the
	// shape of the tree only.
	OmitValues bool
}

// HAPCharacteristic is the wire form of a characteristic.
type HAPCharacteristic struct {
	IID         uint64   `json:"iid"`
	Type        string   `json:"type"`
	Perms       []Perm   `json:"perms"`
	Format      Format   `json:"format,omitempty"`
	Description string   `json:"description,omitempty"`
	Value       any      `json:"value,omitempty"`
	Unit        Unit     `json:"unit,omitempty"`
	MinValue    *float64 `json:"minValue,omitempty"`
	MaxValue    *float64 `json:"maxValue,omitempty"`
	MinStep     *float64 `json:"minStep,omitempty"`
	MaxLen      *int     `json:"maxLen,omitempty"`

	ValidValues     []float64   `json:"valid-values,omitempty"`
	ValidValueRange *[2]float64 `json:"valid-values-range,omitempty"`
}

// HAPService is the wire form of a service.
type HAPService struct {
	IID             uint64               `json:"iid"`
	Type            string               `json:"type"`
	Characteristics []*HAPCharacteristic `json:"characteristics"`
	Primary         bool                 `json:"primary,omitempty"`
	Hidden          bool                 `json:"hidden,omitempty"`
}

// HAPAccessory is the wire form of an accessory.
type HAPAccessory struct {
	AID      uint64        `json:"aid"`
	Services []*HAPService `json:"services"`
}

// HAPAccessories is the envelope of an accessory database response.
type HAPAccessories struct {
	Accessories []*HAPAccessory `json:"accessories"`
}

// ToHAP serializes the characteristic. The value is included only when the
// characteristic is readable and opts does not omit values; on the way out
// it is coerced to the wire format: numbers clamped to the range bounds,
// floats rounded to the precision implied by MinStep, integers rounded to
// whole numbers, over-long strings truncated. Invalid values degrade to
// their raw form rather than failing.
func (c *Characteristic) ToHAP(opts ToHAPOptions) *HAPCharacteristic {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.props
	dto := &HAPCharacteristic{
		IID:         c.iid,
		Type:        c.typ,
		Perms:       append([]Perm{}, p.Perms...),
		Format:      p.Format,
		Description: c.name,
		Unit:        p.Unit,
		MinValue:    copyFloat(p.MinValue),
		MaxValue:    copyFloat(p.MaxValue),
		MinStep:     copyFloat(p.MinStep),
	}
	if len(p.ValidValues) > 0 {
		dto.ValidValues = append([]float64(nil), p.ValidValues...)
	}
	if p.ValidValueRange != nil {
		r := *p.ValidValueRange
		dto.ValidValueRange = &r
	}
	if !opts.OmitValues && ContainsPerm(p.Perms, PermRead) {
		dto.Value, dto.MaxLen = serializeValue(c.value, p)
	}
	return dto
}

// ToHAP serializes the service and its active characteristics. Optional
// templates never appear.
func (s *Service) ToHAP(opts ToHAPOptions) *HAPService {
	s.mu.RLock()
	characteristics := append([]*Characteristic(nil), s.characteristics...)
	dto := &HAPService{
		IID:     s.iid,
		Type:    s.typ,
		Primary: s.primary,
		Hidden:  s.hidden,
	}
	s.mu.RUnlock()

	dto.Characteristics = make([]*HAPCharacteristic, 0, len(characteristics))
	for _, c := range characteristics {
		dto.Characteristics = append(dto.Characteristics, c.ToHAP(opts))
	}
	return dto
}

// ToHAP serializes the accessory and its services.
func (a *Accessory) ToHAP(opts ToHAPOptions) *HAPAccessory {
	a.mu.RLock()
	services := append([]*Service(nil), a.services...)
	aid := a.aid
	a.mu.RUnlock()

	dto := &HAPAccessory{AID: aid, Services: make([]*HAPService, 0, len(services))}
	for _, s := range services {
		dto.Services = append(dto.Services, s.ToHAP(opts))
	}
	return dto
}

// ToHAPAccessories serializes the accessory as a single-element accessory
// list, the form a transport publishes.
func (a *Accessory) ToHAPAccessories(opts ToHAPOptions) []*HAPAccessory {
	return []*HAPAccessory{a.ToHAP(opts)}
}

// ToHAPAccessories serializes the bridge followed by all bridged children.
func (b *Bridge) ToHAPAccessories(opts ToHAPOptions) []*HAPAccessory {
	children := b.Children()
	out := make([]*HAPAccessory, 0, len(children)+1)
	out = append(out, b.Accessory.ToHAP(opts))
	for _, child := range children {
		out = append(out, child.ToHAP(opts))
	}
	return out
}

// serializeValue coerces a cached value to its wire form and reports the
// maxLen flag for strings: values over 256 bytes are truncated to exactly
// 256 bytes and flagged 256, values of 65 to 256 bytes are flagged with
// their byte length, shorter values carry no flag.
func serializeValue(v any, p Props) (any, *int) {
	switch {
	case p.Format == FormatString:
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		if len(s) > 256 {
			truncated := s[:256]
			n := 256
			return truncated, &n
		}
		if len(s) > 64 {
			n := len(s)
			return s, &n
		}
		return s, nil

	case p.Format == FormatFloat:
		f, ok := toFloat64(v)
		if !ok {
			return v, nil
		}
		f = clampFloat(f, p.MinValue, p.MaxValue)
		if p.MinStep != nil {
			f = roundToStep(f, *p.MinStep)
		}
		return f, nil

	case p.Format.IsInteger():
		f, ok := toFloat64(v)
		if !ok {
			return v, nil
		}
		f = clampFloat(f, p.MinValue, p.MaxValue)
		return int64(math.Round(f)), nil

	default:
		return v, nil
	}
}

// computeSignature hashes a serialized accessory list into a hex digest.
func computeSignature(accessories []*HAPAccessory) string {
	payload, err := json.Marshal(accessories)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
