package util

import (
	"testing"
)

func TestPolyLineDecoder(t *testing.T) {
	encoded := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
	result, err := DecodePolyLines(encoded)
	if err != nil {
		t.Fatalf("Decoding returned error %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 coordinate pairs, got %d", len(result))
	}
	// First point of the canonical polyline example
	if result[0][0] != 38.5 || result[0][1] != -120.2 {
		t.Errorf("unexpected first coordinate %v", result[0])
	}
}

func TestPolylineLengthMeters(t *testing.T) {
	// Roughly one degree of latitude, ~111km
	coords := [][]float64{{23.7, 90.4}, {24.7, 90.4}}
	length := PolylineLengthMeters(coords)
	if length < 110000 || length > 112500 {
		t.Errorf("PolylineLengthMeters(%v) = %f; want ~111km", coords, length)
	}

	if got := PolylineLengthMeters(nil); got != 0 {
		t.Errorf("PolylineLengthMeters(nil) = %f; want 0", got)
	}
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name           string
		input          string
		expectedResult string
	}{
		{"Simple", "Hello World", "hello-world"},
		{"Mixed Case", "Dhanmondi 27 Jam", "dhanmondi-27-jam"},
		{"Punctuation", "Road closed! (again)", "road-closed-again"},
		{"Non ASCII", "café blocked", "caf-blocked"},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.input); got != tc.expectedResult {
				t.Errorf("Slugify(%q) = %q; want %q", tc.input, got, tc.expectedResult)
			}
		})
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	code := GenerateVerificationCode()
	if len(code) != 4 {
		t.Fatalf("expected 4 digit code, got %q", code)
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			t.Fatalf("expected digits only, got %q", code)
		}
	}
}
