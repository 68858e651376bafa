package models

// FailureKind tells which layer produced a recorded failure.
type FailureKind string

const (
	FailureTransport  FailureKind = "transport"
	FailureResponse   FailureKind = "response"
	FailureDecode     FailureKind = "decode"
	FailureValidation FailureKind = "validation"
)

// Failure is the error value kept in state for a functional domain.
// Presentation code only needs Message; Kind and Status are informational.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Status  int         `json:"status,omitempty"`
}

func (f Failure) String() string {
	return string(f.Kind) + ": " + f.Message
}
