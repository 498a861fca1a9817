package metadata

import "strings"

// serialPrefix is the zero padding the MOD-PM family puts in front of serials.
const serialPrefix = "00"

// NormalizeInstrumentID reduces a device name or serial to its lookup key: the
// trailing run of digits with a leading "00" removed. "MOD-PM-00384", "00384"
// and "384" all normalize to "384". It returns "" when s has no trailing digits.
func NormalizeInstrumentID(s string) InstrumentID {
	s = strings.TrimSpace(s)
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	digits := s[start:end]
	if digits == "" {
		return ""
	}
	if trimmed := strings.TrimPrefix(digits, serialPrefix); trimmed != "" {
		digits = trimmed
	}
	return InstrumentID(digits)
}
