package ingest

// State is a step of the ingestion pipeline.
type State string

// String returns the string representation of a state.
func (s State) String() string {
	return string(s)
}

// Pipeline states in the order a successful submission passes them.
const (
	StateReceived   State = "RECEIVED"
	StateParsed     State = "PARSED"
	StateClassified State = "CLASSIFIED"
	StateReconciled State = "RECONCILED"
	StateValidated  State = "VALIDATED"
	StatePersisted  State = "PERSISTED"
	StateFailed     State = "FAILED"
)

// Error is returned by Ingest when a submission fails. State is the step
// that failed.
type Error struct {
	State State
	Err   error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Err.Error()
}

// Unwrap implements errors.Unwrap
func (e *Error) Unwrap() error {
	return e.Err
}
