package http

import (
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		ClientID string `validate:"hex32"`
	}
	cv := NewValidator()

	// valid: 32-char lowercase hex
	ok := P{ClientID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	// invalid samples
	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		bad := P{ClientID: s}
		err := cv.Validate(bad)
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "ClientID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{0, 100, 237.12, 0.01, 999999.99} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected %v to pass dec2, got err: %v", v, err)
		}
	}
	for _, v := range []float64{237.123, 0.001, 1.0 / 3.0} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected error for %v", v)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Amount", "2 decimal places") {
			t.Fatalf("expected dec2 message for %v, got: %+v", v, ToFieldErrors(err))
		}
	}
}

func TestFrequencyOneOf(t *testing.T) {
	type P struct {
		PaymentFrequency string `validate:"required,oneof=biweekly monthly"`
	}
	cv := NewValidator()

	for _, s := range []string{"biweekly", "monthly"} {
		if err := cv.Validate(P{PaymentFrequency: s}); err != nil {
			t.Fatalf("expected %q to pass, got err: %v", s, err)
		}
	}
	err := cv.Validate(P{PaymentFrequency: "quarterly"})
	if err == nil {
		t.Fatal("expected error for unknown frequency")
	}
	if !containsFieldMsg(ToFieldErrors(err), "PaymentFrequency", "must be one of") {
		t.Fatalf("expected oneof message, got: %+v", ToFieldErrors(err))
	}
}
