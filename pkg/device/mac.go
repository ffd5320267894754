package device

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	macSeparated = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$|^([0-9A-Fa-f]{2}-){5}[0-9A-Fa-f]{2}$`)
	macBare      = regexp.MustCompile(`^[0-9A-Fa-f]{12}$`)
)

// FormatMAC formats user input for display as it is typed: non-hex
// characters are dropped, digits are uppercased and grouped in colon
// separated pairs, and anything past twelve digits is cut off.
// FormatMAC("aabbccddeeff") == "AA:BB:CC:DD:EE:FF".
func FormatMAC(input string) string {
	var hex strings.Builder
	for _, r := range input {
		if isHex(r) {
			hex.WriteRune(r)
		}
		if hex.Len() == 12 {
			break
		}
	}

	digits := strings.ToUpper(hex.String())
	var out strings.Builder
	for i := 0; i < len(digits); i += 2 {
		if i > 0 {
			out.WriteByte(':')
		}
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		out.WriteString(digits[i:end])
	}
	return out.String()
}

// CanonicalMAC returns the lowercase colon form stored with a device.
// Accepted inputs are colon or dash separated octets, or twelve bare digits.
func CanonicalMAC(input string) (string, error) {
	s := strings.TrimSpace(input)
	switch {
	case macSeparated.MatchString(s):
		s = strings.ReplaceAll(s, "-", ":")
	case macBare.MatchString(s):
		s = FormatMAC(s)
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMAC, input)
	}
	return strings.ToLower(s), nil
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
