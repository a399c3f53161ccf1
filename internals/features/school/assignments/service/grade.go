package service

// Percentage computes a 0-100 grade from earned and max points. The
// second return is false when max is not positive, which callers treat
// as "no grade yet" rather than zero.
func Percentage(earned, max float64) (float64, bool) {
	if max <= 0 {
		return 0, false
	}
	return (earned / max) * 100, true
}

// LetterGrade maps a percentage onto the standard A+ through F scale.
// Every input maps to a letter; values above 100 stay A+ and anything
// below 60 is an F.
func LetterGrade(pct float64) string {
	switch {
	case pct >= 97:
		return "A+"
	case pct >= 93:
		return "A"
	case pct >= 90:
		return "A-"
	case pct >= 87:
		return "B+"
	case pct >= 83:
		return "B"
	case pct >= 80:
		return "B-"
	case pct >= 77:
		return "C+"
	case pct >= 73:
		return "C"
	case pct >= 70:
		return "C-"
	case pct >= 67:
		return "D+"
	case pct >= 63:
		return "D"
	case pct >= 60:
		return "D-"
	default:
		return "F"
	}
}
