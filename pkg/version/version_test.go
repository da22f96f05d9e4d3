package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
		patch uint16
	}{
		{"1.0.0", 1, 0, 0},
		{"1.2.3", 1, 2, 3},
		{"2.0", 2, 0, 0},
		{"10.23.45", 10, 23, 45},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if r.Major != tt.major {
				t.Errorf("Major = %d, want %d", r.Major, tt.major)
			}
			if r.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", r.Minor, tt.minor)
			}
			if r.Patch != tt.patch {
				t.Errorf("Patch = %d, want %d", r.Patch, tt.patch)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0.0",
		"1.x",
		"-1.0",
		"1..0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestRevisionString(t *testing.T) {
	if got := MustParse("1.2.3").String(); got != "1.2.3" {
		t.Errorf("String() = %q, want %q", got, "1.2.3")
	}
	if got := MustParse("2.1").String(); got != "2.1.0" {
		t.Errorf("String() = %q, want %q", got, "2.1.0")
	}
}

func TestRevisionCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"1.0", "1.0.0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRevisionNewer(t *testing.T) {
	if !MustParse("1.1.0").Newer(MustParse("1.0.9")) {
		t.Error("1.1.0 should be newer than 1.0.9")
	}
	if MustParse("1.0.0").Newer(MustParse("1.0.0")) {
		t.Error("equal revisions are not newer")
	}
}

func TestRevisionCompatible(t *testing.T) {
	if !MustParse("1.0.0").Compatible(MustParse("1.9.3")) {
		t.Error("same major should be compatible")
	}
	if MustParse("1.0.0").Compatible(MustParse("2.0.0")) {
		t.Error("different major should not be compatible")
	}
}

func TestCurrentParses(t *testing.T) {
	if _, err := Parse(Current); err != nil {
		t.Fatalf("Current %q does not parse: %v", Current, err)
	}
}
