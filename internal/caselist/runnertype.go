package caselist

import (
	"fmt"
	"strings"
)

// RunnerType is a bitmask of the runners a test case can be executed by.
type RunnerType uint32

const (
	// RunnerNone places no runner requirement.
	RunnerNone RunnerType = 0
	// RunnerAmber marks cases driven by Amber scripts.
	RunnerAmber RunnerType = 1 << 0
)

// ParseRunnerType parses a runner type name. The empty string means none.
func ParseRunnerType(s string) (RunnerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RunnerNone, nil
	case "amber":
		return RunnerAmber, nil
	default:
		return RunnerNone, fmt.Errorf("%w: %q", ErrInvalidRunnerType, s)
	}
}

func (t RunnerType) String() string {
	switch t {
	case RunnerNone:
		return "none"
	case RunnerAmber:
		return "amber"
	default:
		return fmt.Sprintf("RunnerType(%#x)", uint32(t))
	}
}
