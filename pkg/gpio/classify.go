package gpio

// Classify returns the picker tier of pin for role on board.
//
// Reserved and invalid pins are always unavailable, as are input-only pins
// for output roles. Otherwise a pin recommended for the role ranks first,
// problematic pins are marked caution and the remaining safe pins are
// alternatives.
func Classify(pin int, board BoardType, role Role) Recommendation {
	info, ok := Lookup(board, pin)
	if !ok {
		return Unavailable
	}
	return classifyInfo(info, role)
}

func classifyInfo(info PinInfo, role Role) Recommendation {
	switch info.Status {
	case StatusReserved, StatusInvalid:
		return Unavailable
	}
	if info.InputOnly && role.Output() {
		return Unavailable
	}
	if info.Recommends(role) {
		return Recommended
	}
	if info.Status == StatusProblematic {
		return Caution
	}
	return Alternative
}
