package coroengine

import "testing"

func TestSaveMask_Bits(t *testing.T) {
	tests := []struct {
		name string
		mask SaveMask
		want SaveMask
	}{
		{"args", SaveArgs, 0x01},
		{"topic", SaveTopic, 0x02},
		{"last error", SaveLastErr, 0x04},
		{"input separator", SaveInputSep, 0x08},
		{"channel", SaveChannel, 0x10},
		{"all", SaveAll, 0x1F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mask != tt.want {
				t.Errorf("mask = %#x, want %#x", tt.mask, tt.want)
			}
		})
	}
}

func TestSaveMask_DefaultIsAll(t *testing.T) {
	if SaveDefault != SaveAll {
		t.Fatalf("default mask = %#x, want %#x", SaveDefault, SaveAll)
	}
}

func TestSaveMask_QueryIsNeverValid(t *testing.T) {
	if SaveQuery.Valid() {
		t.Fatal("the query sentinel must not be a valid mask")
	}
}

func TestSaveMask_Clamp(t *testing.T) {
	tests := []struct {
		name string
		mask SaveMask
		want SaveMask
	}{
		{"in range unchanged", SaveArgs | SaveChannel, SaveArgs | SaveChannel},
		{"all unchanged", SaveAll, SaveAll},
		{"high bits dropped", 0xFFC0 | SaveTopic, SaveTopic},
		{"only undefined bits", 0x200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mask.Clamp(); got != tt.want {
				t.Errorf("Clamp(%#x) = %#x, want %#x", tt.mask, got, tt.want)
			}
		})
	}
}

func TestSaveMask_Valid(t *testing.T) {
	if !(SaveArgs | SaveInputSep).Valid() {
		t.Error("in-range mask should be valid")
	}
	if !SaveMask(0).Valid() {
		t.Error("empty mask should be valid")
	}
	if SaveMask(0x20).Valid() {
		t.Error("bit beyond the defined categories should be invalid")
	}
}

func TestSaveMask_Has(t *testing.T) {
	m := SaveArgs | SaveTopic
	if !m.Has(SaveArgs) {
		t.Error("mask should include args")
	}
	if m.Has(SaveChannel) {
		t.Error("mask should not include channel")
	}
	if !m.Has(SaveArgs | SaveTopic) {
		t.Error("mask should include its full set")
	}
	if m.Has(SaveArgs | SaveChannel) {
		t.Error("partial overlap should not satisfy Has")
	}
}
