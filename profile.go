package sqmon

import (
	"fmt"

	"github.com/pkg/profile"
)

type noProfile struct{}

func (noProfile) Stop() {}

// StartProfile starts the profiler named by mode ("cpu", "mem", "trace"),
// writing its output under dir. An empty mode profiles nothing.
func StartProfile(mode, dir string) (interface{ Stop() }, error) {
	opts := []func(*profile.Profile){profile.ProfilePath(dir), profile.Quiet}
	switch mode {
	case "":
		return noProfile{}, nil
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfile)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return profile.Start(opts...), nil
}
