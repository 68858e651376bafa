package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/common"
)

// ValidationError is a command input rejected before any backend call.
type ValidationError struct {
	Field string
	Tag   string
}

func (e *ValidationError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "min":
		return fmt.Sprintf("%s must not be empty", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Unwrap lets callers match common.ErrEmptyID and common.ErrEmptyForm.
func (e *ValidationError) Unwrap() error {
	switch e.Field {
	case "id":
		return common.ErrEmptyID
	case "form":
		return common.ErrEmptyForm
	}
	return nil
}

// FailureFrom collapses err into the value kept in state. The message of a
// ResponseError is the server's own text.
func FailureFrom(err error) models.Failure {
	var (
		ve *ValidationError
		re *client.ResponseError
		de *client.DecodeError
	)
	switch {
	case err == nil:
		return models.Failure{}
	case errors.As(err, &ve):
		return models.Failure{Kind: models.FailureValidation, Message: ve.Error()}
	case errors.As(err, &re):
		return models.Failure{Kind: models.FailureResponse, Message: re.Message, Status: re.StatusCode}
	case errors.As(err, &de):
		return models.Failure{Kind: models.FailureDecode, Message: de.Error()}
	default:
		return models.Failure{Kind: models.FailureTransport, Message: err.Error()}
	}
}
