// v0
// internal/actuator/actuator.go
package actuator

import (
	"github.com/nrg-champ/envstation/internal/hal"
)

// Thresholds are the raw-code trip points for both outputs.
type Thresholds struct {
	Light int
	Air   int
}

// State is the computed on/off pair for one loop pass.
type State struct {
	DarkLED   bool
	AirBuzzer bool
}

// Compute derives the actuator pair from one fast sample. Both comparisons
// are strict: a reading equal to its threshold leaves the output off.
func Compute(r hal.FastReading, th Thresholds) State {
	return State{
		DarkLED:   r.LightRaw < th.Light,
		AirBuzzer: r.AirRaw > th.Air,
	}
}

// pinDriver is the slice of the board the outputs need.
type pinDriver interface {
	SetLED(on bool)
	SetBuzzer(on bool)
}

// Outputs drives the physical pins.
type Outputs struct {
	board pinDriver
}

func NewOutputs(board pinDriver) *Outputs {
	return &Outputs{board: board}
}

// Apply pushes the state to both pins. Reapplying an unchanged state leaves
// the pins exactly as they were.
func (o *Outputs) Apply(st State) {
	o.board.SetLED(st.DarkLED)
	o.board.SetBuzzer(st.AirBuzzer)
}
