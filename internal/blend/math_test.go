package blend

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddClamp(t *testing.T) {
	tests := []struct {
		a, b, want byte
	}{
		{0, 0, 0},
		{100, 100, 200},
		{200, 100, 255},
		{255, 255, 255},
	}
	for _, tt := range tests {
		if got := addClamp(tt.a, tt.b); got != tt.want {
			t.Errorf("addClamp(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScale(t *testing.T) {
	r, g, b, a := Scale(200, 100, 50, 200, 255)
	if diff := cmp.Diff([4]byte{200, 100, 50, 200}, [4]byte{r, g, b, a}); diff != "" {
		t.Errorf("full coverage (-want +got):\n%s", diff)
	}
	r, g, b, a = Scale(200, 100, 50, 200, 0)
	if diff := cmp.Diff([4]byte{}, [4]byte{r, g, b, a}); diff != "" {
		t.Errorf("zero coverage (-want +got):\n%s", diff)
	}
	r, g, b, a = Scale(255, 0, 0, 255, 128)
	if r != a || a != 128 || g != 0 || b != 0 {
		t.Errorf("half coverage = %d,%d,%d,%d", r, g, b, a)
	}
}
