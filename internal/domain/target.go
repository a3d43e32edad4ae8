package domain

import (
	"strings"
	"unicode"
)

const MaxTargetLength = 200

// Qualifier phrases mixed into the stage-1 query to keep results in the
// regenerative-medicine context. The script family of the target picks one.
const (
	QualifierEN = "regenerative medicine cell therapy news"
	QualifierJA = "再生医療 細胞治療"
)

// Target is the user-supplied entity name driving a scan. Opaque beyond
// trimming; may contain non-ASCII text.
type Target string

func NewTarget(s string) (Target, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyTarget
	}
	if len(s) > MaxTargetLength {
		return "", ErrTargetTooLong
	}
	return Target(s), nil
}

func (t Target) String() string {
	return string(t)
}

// IsASCII reports whether the target is representable in plain ASCII.
// ASCII targets get the English qualifier, everything else the Japanese one.
func (t Target) IsASCII() bool {
	for _, r := range t {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func (t Target) Qualifier() string {
	if t.IsASCII() {
		return QualifierEN
	}
	return QualifierJA
}
