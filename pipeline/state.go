package pipeline

// State is the position of a run in the pipeline.
type State int

// Pipeline states, in the order a successful run visits them.
const (
	StateIdle State = iota
	StateValidating
	StateExtracting
	StateValidatingReachability
	StateClassifying
	StateAggregating
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:                   "idle",
	StateValidating:             "validating",
	StateExtracting:             "extracting",
	StateValidatingReachability: "validating reachability",
	StateClassifying:            "classifying",
	StateAggregating:            "aggregating",
	StateDone:                   "done",
	StateFailed:                 "failed",
}

// String returns the human-readable name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether a run in this state has finished.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
