package typeid

import (
	"strings"
	"testing"
)

func TestNewIDsValidate(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
	}{
		{NewDrawingID(), PrefixDrawing},
		{NewCanvasID(), PrefixCanvas},
	}
	for _, tt := range tests {
		if !strings.HasPrefix(tt.id, tt.prefix+"_") {
			t.Errorf("%q does not start with %q", tt.id, tt.prefix+"_")
		}
		if err := Validate(tt.id, tt.prefix); err != nil {
			t.Errorf("Validate(%q): %v", tt.id, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewCanvasID(), PrefixDrawing); err == nil {
		t.Error("accepted a canvas id as a drawing id")
	}
	if err := Validate("drw_not-a-typeid", PrefixDrawing); err == nil {
		t.Error("accepted a malformed id")
	}
}

func TestZeroCanvasID(t *testing.T) {
	if err := Validate("cnv_00000000000000000000000000", PrefixCanvas); err != nil {
		t.Errorf("default canvas id rejected: %v", err)
	}
}
