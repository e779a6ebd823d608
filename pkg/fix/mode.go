package fix

import (
	"fmt"
	"strings"
)

// Mode controls whether fixes are computed and whether results are persisted.
type Mode int

const (
	// ModeDisabled computes no fixes.
	ModeDisabled Mode = iota

	// ModeGenerate computes fixes but leaves the document untouched.
	ModeGenerate

	// ModeApply computes fixes and writes the result back.
	ModeApply
)

// ModeFromFlag maps a boolean "fix" switch onto a Mode.
func ModeFromFlag(apply bool) Mode {
	if apply {
		return ModeApply
	}
	return ModeDisabled
}

// ParseMode parses a mode name. Matching is case-insensitive and
// "none" is accepted as an alias for "disabled".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generate":
		return ModeGenerate, nil
	case "apply":
		return ModeApply, nil
	case "disabled", "none":
		return ModeDisabled, nil
	default:
		return ModeDisabled, fmt.Errorf("unknown fix mode %q (expected generate, apply or disabled)", s)
	}
}

// ComputesFixes reports whether edits should be computed in this mode.
func (m Mode) ComputesFixes() bool {
	switch m {
	case ModeGenerate, ModeApply:
		return true
	default:
		return false
	}
}

// WritesFixes reports whether the fixed document should be persisted.
func (m Mode) WritesFixes() bool {
	return m == ModeApply
}

func (m Mode) String() string {
	switch m {
	case ModeGenerate:
		return "generate"
	case ModeApply:
		return "apply"
	case ModeDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
