package health

import (
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrCheckFailed", ErrCheckFailed},
		{"ErrCheckTimeout", ErrCheckTimeout},
		{"ErrCheckerNotFound", ErrCheckerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("%s is nil", tt.name)
			}
			if !strings.HasPrefix(tt.err.Error(), "health: ") {
				t.Errorf("%s = %q, want package prefix", tt.name, tt.err.Error())
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if ErrCheckFailed == ErrCheckTimeout || ErrCheckTimeout == ErrCheckerNotFound || ErrCheckFailed == ErrCheckerNotFound {
		t.Error("sentinel errors must be distinct")
	}
}
