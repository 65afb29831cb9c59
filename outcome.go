package breedsnp

import "fmt"

// State is the position of a simulation in the generation state machine.
type State int

const (
	Producing State = iota
	Exhausted
	Done
	// Failed marks a stored run that was aborted by an error or cancellation.
	Failed
)

var stateNames = map[State]string{
	Producing: "producing",
	Exhausted: "exhausted",
	Done:      "done",
	Failed:    "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return Producing, fmt.Errorf("unknown simulation state %q", name)
}

// Result is what a simulation hands back: the last completed generation and
// how many generations were actually produced. Produced is below Requested
// only when the run ended Exhausted.
type Result struct {
	Final     *GenotypeTable
	Produced  int
	Requested int
	State     State
	Founders  *GenerationReport
	Reports   []*GenerationReport
}
