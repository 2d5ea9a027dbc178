package wave

import "fmt"

// Mode selects the waveform used to animate a flag.
type Mode int

const (
	// ModeXY lags the wave phase with both column and row, amplitude by column.
	ModeXY Mode = iota
	// ModeX uses only the column for phase and amplitude, so every column moves as one.
	ModeX
	// ModeMadness lags the phase by squared distance from the top-left corner.
	ModeMadness
)

var modeNames = map[Mode]string{
	ModeXY:      "xy",
	ModeX:       "x",
	ModeMadness: "madness",
}

// String returns the config name of the mode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a config name to a Mode.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return ModeXY, fmt.Errorf("unknown wave mode %q (want xy, x or madness)", name)
}
