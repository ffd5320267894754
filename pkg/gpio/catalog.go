package gpio

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownBoard indicates a board type with no pin catalog.
var ErrUnknownBoard = errors.New("unknown board type")

// maxAlternatives caps the number of alternative pins suggested per pin.
const maxAlternatives = 4

type pinSpec struct {
	status    PinStatus
	inputOnly bool
	reason    string
}

type boardSpec struct {
	pinCount    int
	pins        map[int]pinSpec
	recommended map[Role][]int
}

// Default pin layout matches the stock firmware: relayPins[i] pairs with manualPins[i].
var boards = map[BoardType]boardSpec{
	BoardESP32: {
		pinCount: 40,
		pins: map[int]pinSpec{
			0:  {StatusProblematic, false, "strapping pin, must be HIGH at boot"},
			1:  {StatusReserved, false, "UART0 TX, used by the serial console"},
			2:  {StatusProblematic, false, "strapping pin, drives the on-board LED"},
			3:  {StatusReserved, false, "UART0 RX, used by the serial console"},
			5:  {StatusProblematic, false, "strapping pin, outputs PWM at boot"},
			6:  {StatusReserved, false, "connected to SPI flash"},
			7:  {StatusReserved, false, "connected to SPI flash"},
			8:  {StatusReserved, false, "connected to SPI flash"},
			9:  {StatusReserved, false, "connected to SPI flash"},
			10: {StatusReserved, false, "connected to SPI flash"},
			11: {StatusReserved, false, "connected to SPI flash"},
			12: {StatusProblematic, false, "strapping pin, boot fails if pulled HIGH"},
			15: {StatusProblematic, false, "strapping pin, outputs PWM at boot"},
			20: {StatusInvalid, false, "not present on ESP32"},
			24: {StatusInvalid, false, "not present on ESP32"},
			28: {StatusInvalid, false, "not present on ESP32"},
			29: {StatusInvalid, false, "not present on ESP32"},
			30: {StatusInvalid, false, "not present on ESP32"},
			31: {StatusInvalid, false, "not present on ESP32"},
			34: {StatusSafe, true, "input only, no internal pull resistors"},
			35: {StatusSafe, true, "input only, no internal pull resistors"},
			36: {StatusSafe, true, "input only, no internal pull resistors"},
			37: {StatusProblematic, true, "input only, not broken out on most boards"},
			38: {StatusProblematic, true, "input only, not broken out on most boards"},
			39: {StatusSafe, true, "input only, no internal pull resistors"},
		},
		recommended: map[Role][]int{
			RoleRelay:  {16, 17, 18, 19, 21, 22},
			RoleManual: {25, 26, 27, 32, 33, 23},
			RolePIR:    {34, 35, 36, 39},
		},
	},
	BoardESP8266: {
		pinCount: 17,
		pins: map[int]pinSpec{
			0:  {StatusProblematic, false, "boot mode pin, must be HIGH at boot"},
			1:  {StatusReserved, false, "UART TX, used by the serial console"},
			2:  {StatusProblematic, false, "boot mode pin, drives the on-board LED"},
			3:  {StatusReserved, false, "UART RX, used by the serial console"},
			6:  {StatusReserved, false, "connected to SPI flash"},
			7:  {StatusReserved, false, "connected to SPI flash"},
			8:  {StatusReserved, false, "connected to SPI flash"},
			9:  {StatusReserved, false, "connected to SPI flash"},
			10: {StatusReserved, false, "connected to SPI flash"},
			11: {StatusReserved, false, "connected to SPI flash"},
			15: {StatusProblematic, false, "boot mode pin, must be LOW at boot"},
			16: {StatusProblematic, false, "no interrupt or PWM support, HIGH at boot"},
		},
		recommended: map[Role][]int{
			RoleRelay:  {4, 5, 12, 13},
			RoleManual: {14},
			RolePIR:    {16},
		},
	},
}

// Catalog returns the full pin table for a board, ordered by pin number.
// The returned slice is a fresh copy and may be modified by the caller.
func Catalog(board BoardType) ([]PinInfo, error) {
	b, ok := boards[board]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBoard, board)
	}

	pins := make([]PinInfo, 0, b.pinCount)
	for pin := 0; pin < b.pinCount; pin++ {
		pins = append(pins, b.info(pin))
	}
	return pins, nil
}

// Lookup returns the catalog entry for one pin.
func Lookup(board BoardType, pin int) (PinInfo, bool) {
	b, ok := boards[board]
	if !ok || pin < 0 || pin >= b.pinCount {
		return PinInfo{}, false
	}
	return b.info(pin), true
}

// RecommendedPins returns the first-choice pins for a role, in wiring order.
func RecommendedPins(board BoardType, role Role) []int {
	b, ok := boards[board]
	if !ok {
		return nil
	}
	return append([]int(nil), b.recommended[role]...)
}

// MarkUsed returns a copy of pins with Used set for every pin in used.
func MarkUsed(pins []PinInfo, used map[int]bool) []PinInfo {
	out := make([]PinInfo, len(pins))
	for i, p := range pins {
		p.Used = used[p.Pin]
		out[i] = p
	}
	return out
}

func (s boardSpec) info(pin int) PinInfo {
	ps, ok := s.pins[pin]
	if !ok {
		ps = pinSpec{status: StatusSafe}
	}

	info := PinInfo{
		Pin:       pin,
		Status:    ps.status,
		InputOnly: ps.inputOnly,
		Reason:    ps.reason,
	}

	for _, role := range []Role{RoleRelay, RoleManual, RolePIR} {
		for _, p := range s.recommended[role] {
			if p == pin {
				info.RecommendedFor = append(info.RecommendedFor, role)
			}
		}
	}

	if ps.status != StatusSafe || len(info.RecommendedFor) == 0 {
		info.AlternativePins = s.alternatives(pin, ps.inputOnly)
	}
	return info
}

// alternatives lists recommended pins that can stand in for pin. Input-only
// pins are replaced by sensor pins, all others by relay pins.
func (s boardSpec) alternatives(pin int, inputOnly bool) []int {
	role := RoleRelay
	if inputOnly {
		role = RolePIR
	}

	var out []int
	for _, p := range s.recommended[role] {
		if p == pin {
			continue
		}
		if ps, ok := s.pins[p]; ok && ps.status != StatusSafe && ps.status != StatusProblematic {
			continue
		}
		out = append(out, p)
		if len(out) == maxAlternatives {
			break
		}
	}
	sort.Ints(out)
	return out
}
