package helpers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/devantler-tech/kubedrift/pkg/utils/timer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// TimingFlagName is the name of the persistent flag that enables per-activity
// timing output.
const TimingFlagName = "timing"

var (
	// ErrNilCommand is returned when a nil command is passed to a flag helper.
	ErrNilCommand = errors.New("command is nil")

	// ErrFlagNotFound is returned when a requested flag is not registered on
	// the command or any of its parents.
	ErrFlagNotFound = errors.New("flag not found")
)

// IsTimingEnabled reports whether the timing flag is set on the command. The
// flag may live on the command itself, its persistent flags, or be inherited
// from a parent command.
func IsTimingEnabled(cmd *cobra.Command) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}

	flag := lookupTimingFlag(cmd)
	if flag == nil {
		return false, fmt.Errorf("%w: --%s", ErrFlagNotFound, TimingFlagName)
	}

	enabled, err := strconv.ParseBool(flag.Value.String())
	if err != nil {
		return false, fmt.Errorf("failed to parse --%s flag: %w", TimingFlagName, err)
	}

	return enabled, nil
}

// MaybeTimer returns the timer when timing output is enabled on the command,
// and nil otherwise. Passing the result as a notify.Message timer makes timing
// output strictly opt-in.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	if cmd == nil || tmr == nil {
		return nil
	}

	enabled, err := IsTimingEnabled(cmd)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}

func lookupTimingFlag(cmd *cobra.Command) *pflag.Flag {
	if flag := cmd.Flags().Lookup(TimingFlagName); flag != nil {
		return flag
	}

	if flag := cmd.PersistentFlags().Lookup(TimingFlagName); flag != nil {
		return flag
	}

	return cmd.InheritedFlags().Lookup(TimingFlagName)
}
