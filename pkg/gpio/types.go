package gpio

// BoardType identifies the controller hardware. It decides the pin catalog
// and the maximum number of switches a device may carry.
type BoardType string

// Board constants
const (
	BoardESP32   BoardType = "esp32"
	BoardESP8266 BoardType = "esp8266"
)

// MaxSwitches returns the switch ceiling for a board, or 0 for unknown boards.
func MaxSwitches(board BoardType) int {
	switch board {
	case BoardESP32:
		return 8
	case BoardESP8266:
		return 4
	default:
		return 0
	}
}

// Valid reports whether the board is supported.
func (b BoardType) Valid() bool {
	return b == BoardESP32 || b == BoardESP8266
}

// PinStatus is the hardware safety classification of a pin.
type PinStatus string

// Pin status constants
const (
	StatusSafe        PinStatus = "safe"
	StatusProblematic PinStatus = "problematic"
	StatusReserved    PinStatus = "reserved"
	StatusInvalid     PinStatus = "invalid"
)

// Role is what a pin is wired to do on the device.
type Role string

// Role constants
const (
	RoleRelay  Role = "relay"
	RoleManual Role = "manual"
	RolePIR    Role = "pir"
)

// Output reports whether the role drives the pin.
func (r Role) Output() bool {
	return r == RoleRelay
}

// PinInfo describes one physical pin of a board.
type PinInfo struct {
	Pin             int       `json:"pin"`
	Status          PinStatus `json:"status"`
	Used            bool      `json:"used"`
	InputOnly       bool      `json:"inputOnly,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	RecommendedFor  []Role    `json:"recommendedFor,omitempty"`
	AlternativePins []int     `json:"alternativePins,omitempty"`
}

// Recommends reports whether the pin is a first-choice pin for role.
func (p PinInfo) Recommends(role Role) bool {
	for _, r := range p.RecommendedFor {
		if r == role {
			return true
		}
	}
	return false
}

// Recommendation is the tier a pin picker shows for a pin in a given role.
// It is independent of PinStatus: a safe pin can still be only an alternative.
type Recommendation string

// Recommendation constants
const (
	Recommended Recommendation = "recommended"
	Alternative Recommendation = "alternative"
	Caution     Recommendation = "caution"
	Unavailable Recommendation = "unavailable"
)

// Issue is a single validation error or warning.
type Issue struct {
	Field      string `json:"field,omitempty"`
	Pin        *int   `json:"pin,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ValidationResult is the outcome of a GPIO configuration check.
type ValidationResult struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// NewResult returns an empty, passing result.
func NewResult() ValidationResult {
	return ValidationResult{Valid: true, Errors: []Issue{}, Warnings: []Issue{}}
}

// AddError records an error and marks the result failed.
func (r *ValidationResult) AddError(issue Issue) {
	r.Errors = append(r.Errors, issue)
	r.Valid = false
}

// AddWarning records a warning. Warnings never fail a result.
func (r *ValidationResult) AddWarning(issue Issue) {
	r.Warnings = append(r.Warnings, issue)
}

// Merge folds other into r.
func (r *ValidationResult) Merge(other ValidationResult) {
	for _, e := range other.Errors {
		r.AddError(e)
	}
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// PinPtr returns a pointer to pin, for Issue.Pin and optional pin fields.
func PinPtr(pin int) *int {
	return &pin
}
