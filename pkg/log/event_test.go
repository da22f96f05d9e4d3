package log

import "testing"

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryChange, "CHANGE"},
		{CategoryConfig, "CONFIG"},
		{CategoryIdentify, "IDENTIFY"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestCategoryValues(t *testing.T) {
	// Verify explicit values for wire stability
	if CategoryChange != 0 {
		t.Errorf("CategoryChange = %d, want 0", CategoryChange)
	}
	if CategoryConfig != 1 {
		t.Errorf("CategoryConfig = %d, want 1", CategoryConfig)
	}
	if CategoryIdentify != 2 {
		t.Errorf("CategoryIdentify = %d, want 2", CategoryIdentify)
	}
	if CategoryError != 3 {
		t.Errorf("CategoryError = %d, want 3", CategoryError)
	}
}
