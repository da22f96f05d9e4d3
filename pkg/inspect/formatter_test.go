package inspect

import (
	"strings"
	"testing"

	"github.com/hap-protocol/hap-go/pkg/model"
)

func TestFormatterFormatValue(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name  string
		value any
		unit  model.Unit
		want  string
	}{
		{name: "nil", value: nil, unit: model.UnitNone, want: "null"},
		{name: "bool true", value: true, unit: model.UnitNone, want: "true"},
		{name: "bool false", value: false, unit: model.UnitNone, want: "false"},
		{name: "string", value: "Acme", unit: model.UnitNone, want: `"Acme"`},
		{name: "plain int", value: int64(42), unit: model.UnitNone, want: "42"},
		{name: "int percentage", value: int64(75), unit: model.UnitPercentage, want: "75%"},
		{name: "int seconds", value: int64(30), unit: model.UnitSeconds, want: "30 s"},
		{name: "float celsius", value: 21.5, unit: model.UnitCelsius, want: "21.5 °C"},
		{name: "float percentage", value: 45.5, unit: model.UnitPercentage, want: "45.5%"},
		{name: "float arc degrees", value: 180.0, unit: model.UnitArcDegrees, want: "180.0°"},
		{name: "float lux", value: 120.5, unit: model.UnitLux, want: "120.5 lx"},
		{name: "plain float", value: 3.14159, unit: model.UnitNone, want: "3.14"},
		{name: "bytes", value: []byte{0xde, 0xad}, unit: model.UnitNone, want: "0xdead"},
		{name: "uint8", value: uint8(2), unit: model.UnitNone, want: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValue(tt.value, tt.unit); got != tt.want {
				t.Errorf("FormatValue(%v, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
			}
		})
	}
}

func TestFormatterIndent(t *testing.T) {
	f := NewFormatter()

	if got := f.Indent(0, "x"); got != "x" {
		t.Errorf("Indent(0) = %q", got)
	}
	if got := f.Indent(2, "x"); got != "    x" {
		t.Errorf("Indent(2) = %q", got)
	}

	f.IndentWidth = 4
	if got := f.Indent(1, "x"); got != "    x" {
		t.Errorf("Indent(1) with width 4 = %q", got)
	}
}

func TestFormatPerms(t *testing.T) {
	tests := []struct {
		name  string
		perms []model.Perm
		want  string
	}{
		{name: "empty", perms: nil, want: "none"},
		{name: "read only", perms: []model.Perm{model.PermRead}, want: "pr"},
		{
			name:  "read write events",
			perms: []model.Perm{model.PermRead, model.PermWrite, model.PermEvents},
			want:  "pr,pw,ev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPerms(tt.perms); got != tt.want {
				t.Errorf("FormatPerms = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatHeatingCoolingState(t *testing.T) {
	tests := []struct {
		state int64
		want  string
	}{
		{0, "OFF"},
		{1, "HEAT"},
		{2, "COOL"},
		{3, "AUTO"},
		{9, "UNKNOWN(9)"},
	}

	for _, tt := range tests {
		if got := FormatHeatingCoolingState(tt.state); got != tt.want {
			t.Errorf("FormatHeatingCoolingState(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFormatTemperatureDisplayUnits(t *testing.T) {
	if got := FormatTemperatureDisplayUnits(0); got != "CELSIUS" {
		t.Errorf("FormatTemperatureDisplayUnits(0) = %q", got)
	}
	if got := FormatTemperatureDisplayUnits(1); got != "FAHRENHEIT" {
		t.Errorf("FormatTemperatureDisplayUnits(1) = %q", got)
	}
	if got := FormatTemperatureDisplayUnits(7); got != "UNKNOWN(7)" {
		t.Errorf("FormatTemperatureDisplayUnits(7) = %q", got)
	}
}

func TestFormatCharacteristicTable(t *testing.T) {
	f := NewFormatter()

	rows := []CharacteristicRow{
		{IID: 9, Name: "On", Value: "true", Format: "bool", Perms: "pr,pw,ev"},
		{IID: 10, Name: "Brightness", Value: "80%", Format: "int", Perms: "pr,pw,ev"},
	}

	output := f.FormatCharacteristicTable(rows)
	if !strings.Contains(output, "On: true (bool, pr,pw,ev)") {
		t.Errorf("missing metadata row in output:\n%s", output)
	}

	f.ShowIDs = true
	output = f.FormatCharacteristicTable(rows)
	if !strings.Contains(output, "[9] On: true") {
		t.Errorf("missing ID row in output:\n%s", output)
	}

	if got := f.FormatCharacteristicTable(nil); got != "  (no characteristics)" {
		t.Errorf("empty table = %q", got)
	}
}
