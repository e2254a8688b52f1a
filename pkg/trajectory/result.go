package trajectory

// Result is the outcome of one Update call on a Generator.
type Result int

const (
	// Working means a new or ongoing trajectory is being executed; call
	// Update again on the next tick.
	Working Result = iota

	// Finished means the target state has been reached; no further calls
	// are required until a new target is set.
	Finished

	// ErrorInvalidInput means the input failed validation (out-of-range
	// velocity, non-positive limits, and similar).
	ErrorInvalidInput

	// ErrorExecutionTimeCalculation means Step1 could not find any
	// feasible free-duration profile for at least one DoF.
	ErrorExecutionTimeCalculation

	// ErrorSynchronizationCalculation means the Synchronizer found no
	// unblocked finish time, or a DoF's Step2 solve could not reach the
	// chosen one.
	ErrorSynchronizationCalculation
)

func (r Result) String() string {
	switch r {
	case Working:
		return "Working"
	case Finished:
		return "Finished"
	case ErrorInvalidInput:
		return "ErrorInvalidInput"
	case ErrorExecutionTimeCalculation:
		return "ErrorExecutionTimeCalculation"
	case ErrorSynchronizationCalculation:
		return "ErrorSynchronizationCalculation"
	default:
		return "Unknown"
	}
}
