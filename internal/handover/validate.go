package handover

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/slocops/handover/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return model.Location(fl.Field().String()).Valid()
	})
	return v
}

// Normalize trims surrounding whitespace from names and item IDs.
func Normalize(req model.HandoverRequest) model.HandoverRequest {
	req.SenderName = strings.TrimSpace(req.SenderName)
	req.ReceiverName = strings.TrimSpace(req.ReceiverName)
	lines := make([]model.RequestLine, len(req.Lines))
	for i, l := range req.Lines {
		l.ItemID = strings.TrimSpace(l.ItemID)
		lines[i] = l
	}
	if req.Lines != nil {
		req.Lines = lines
	}
	return req
}

// Validate checks a request's preconditions. It reports the first violated
// precondition as one of the ErrInvalidRequest sentinels.
func Validate(req model.HandoverRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return translate(verrs[0])
}

func translate(fe validator.FieldError) error {
	switch fe.StructField() {
	case "SenderName":
		return ErrMissingSender
	case "ReceiverName":
		return ErrMissingReceiver
	case "From":
		return ErrInvalidLocation
	case "To":
		if fe.Tag() == "nefield" {
			return ErrSameLocation
		}
		return ErrInvalidLocation
	case "Lines":
		return ErrNoLines
	case "ItemID":
		return fmt.Errorf("%w (%s)", ErrMissingItemID, fe.Namespace())
	case "Quantity":
		return fmt.Errorf("%w (%s)", ErrInvalidQuantity, fe.Namespace())
	}
	return fmt.Errorf("%w: %s failed %q", ErrInvalidRequest, fe.Namespace(), fe.Tag())
}
