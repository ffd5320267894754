package device

import (
	"errors"
	"testing"
)

func TestFormatMAC(t *testing.T) {
	cases := map[string]string{
		"aabbccddeeff":       "AA:BB:CC:DD:EE:FF",
		"aa-bb-cc-dd-ee-ff":  "AA:BB:CC:DD:EE:FF",
		"aabbc":              "AA:BB:C",
		"":                   "",
		"aabbccddeeff0011":   "AA:BB:CC:DD:EE:FF",
		"zz:aa:bb":           "AA:BB",
		"AA:BB:CC:DD:EE:FF ": "AA:BB:CC:DD:EE:FF",
	}
	for in, want := range cases {
		if got := FormatMAC(in); got != want {
			t.Errorf("FormatMAC(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestCanonicalMAC(t *testing.T) {
	cases := map[string]string{
		"AA:BB:CC:DD:EE:FF":   "aa:bb:cc:dd:ee:ff",
		"AA-BB-CC-DD-EE-FF":   "aa:bb:cc:dd:ee:ff",
		"aabbccddeeff":        "aa:bb:cc:dd:ee:ff",
		" aa:bb:cc:dd:ee:ff ": "aa:bb:cc:dd:ee:ff",
	}
	for in, want := range cases {
		got, err := CanonicalMAC(in)
		if err != nil {
			t.Errorf("CanonicalMAC(%q): unexpected error %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("CanonicalMAC(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestCanonicalMAC_Invalid(t *testing.T) {
	for _, in := range []string{"", "aa:bb:cc", "aa:bb-cc:dd-ee:ff", "gg:hh:ii:jj:kk:ll", "aabbccddeeff00"} {
		if _, err := CanonicalMAC(in); !errors.Is(err, ErrInvalidMAC) {
			t.Errorf("CanonicalMAC(%q): expected ErrInvalidMAC, got %v", in, err)
		}
	}
}

func TestMAC_RoundTrip(t *testing.T) {
	formatted := FormatMAC("aabbccddeeff")
	if formatted != "AA:BB:CC:DD:EE:FF" {
		t.Fatalf("expected AA:BB:CC:DD:EE:FF, got %s", formatted)
	}
	canonical, err := CanonicalMAC(formatted)
	if err != nil {
		t.Fatal(err)
	}
	if canonical != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("expected aa:bb:cc:dd:ee:ff, got %s", canonical)
	}
}
