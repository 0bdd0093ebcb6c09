package arena

import (
	"errors"
	"testing"
)

func TestDefaultFaces(t *testing.T) {
	b := Default()

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"top face", b.TopFace(), 295},
		{"bottom face", b.BottomFace(), -295},
		{"left face", b.LeftFace(), -445},
		{"right face", b.RightFace(), 445},
		{"width", b.Width(), 890},
		{"height", b.Height(), 590},
	}

	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("%s = %v, expected %v", tc.name, tc.got, tc.expected)
		}
	}
}

func TestBoundsForHalfHeight(t *testing.T) {
	b := Default()

	// Reference paddle is 120 tall
	if got := b.TopBound(60); got != 225 {
		t.Errorf("TopBound(60) = %v, expected 225", got)
	}
	if got := b.BottomBound(60); got != -225 {
		t.Errorf("BottomBound(60) = %v, expected -225", got)
	}

	// Arena whose legal band for a half-height of 10 tops out at 290
	custom := Bounds{Left: -450, Right: 450, Bottom: -310, Top: 310, WallThickness: 10, Padding: 5}
	if got := custom.TopBound(10); got != 290 {
		t.Errorf("TopBound(10) = %v, expected 290", got)
	}
}

func TestFits(t *testing.T) {
	b := Default()
	if !b.Fits(60) {
		t.Error("reference paddle should fit")
	}
	if b.Fits(300) {
		t.Error("a paddle taller than the arena should not fit")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"default", Default(), false},
		{"inverted x", Bounds{Left: 10, Right: -10, Bottom: -10, Top: 10}, true},
		{"inverted y", Bounds{Left: -10, Right: 10, Bottom: 10, Top: -10}, true},
		{"walls swallow the arena", Bounds{Left: -5, Right: 5, Bottom: -100, Top: 100, WallThickness: 10}, true},
		{"negative padding", Bounds{Left: -10, Right: 10, Bottom: -10, Top: 10, Padding: -1}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bounds.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("Validate() error should wrap ErrInvalidBounds, got %v", err)
			}
		})
	}
}
