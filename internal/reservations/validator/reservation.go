package validator

import (
	"errors"
	"fmt"
	"strings"

	"examsched/pkg/logger"
	"examsched/pkg/model"
	"examsched/pkg/sanitizer"
	"examsched/pkg/timeslot"

	"github.com/go-playground/validator/v10"
)

// Fixed per-field messages. Callers and tests match on these strings, so
// they must stay stable.
const (
	MsgNameRequired       = "Name is required"
	MsgDateRequired       = "Date is required"
	MsgStartTimeRequired  = "Start time is required"
	MsgEndTimeRequired    = "End time is required"
	MsgVenueRequired      = "Venue is required"
	MsgGroupRequired      = "Group is required"
	MsgStartTimeFormat    = "Start time must be a valid HH:MM time"
	MsgEndTimeFormat      = "End time must be a valid HH:MM time"
	MsgEndBeforeStart     = "End time must be after start time"
	MsgResourceCountRange = "Resource count cannot be negative"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Messages flattens the errors to their display strings, preserving order.
func (v ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return messages
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("timeofday", validateTimeOfDay); err != nil {
		log.Fatal("Failed to register 'timeofday' validator", "error", err)
	}

	log.Info("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

// validateTimeOfDay delegates to the one HH:MM parser the whole system
// shares. Every malformed shape fails identically.
func validateTimeOfDay(fl validator.FieldLevel) bool {
	_, ok := timeslot.ParseMinutes(fl.Field().String())
	return ok
}

// Normalize trims the candidate in place so requiredness is decided on
// trimmed values. Display fields get internal whitespace collapsed too.
func (v *ReservationValidator) Normalize(c *model.Candidate) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Date = sanitizer.NormalizeToken(c.Date)
	c.StartTime = sanitizer.NormalizeToken(c.StartTime)
	c.EndTime = sanitizer.NormalizeToken(c.EndTime)
	c.Venue = sanitizer.NormalizeVenue(c.Venue)
	c.Group = sanitizer.NormalizeGroup(c.Group)
}

// ValidateCandidate returns every field and time problem of a candidate,
// ordered by field declaration, with the ordering check last. An empty
// result means the candidate is safe to clash-check.
func (v *ReservationValidator) ValidateCandidate(c *model.Candidate) ValidationErrors {
	var result ValidationErrors

	if err := v.validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			result = v.translate(fieldErrs)
		} else {
			result = ValidationErrors{{Field: "candidate", Message: err.Error()}}
		}
	}

	// The ordering rule applies whenever both times parse, independently
	// of problems in other fields.
	start, okStart := timeslot.ParseMinutes(c.StartTime)
	end, okEnd := timeslot.ParseMinutes(c.EndTime)
	if okStart && okEnd && end <= start {
		result = append(result, ValidationError{Field: "EndTime", Message: MsgEndBeforeStart})
	}

	return result
}

func (v *ReservationValidator) translate(errs validator.ValidationErrors) ValidationErrors {
	var result ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Field() {
		case "Name":
			message = MsgNameRequired
		case "Date":
			message = MsgDateRequired
		case "StartTime":
			if err.Tag() == "timeofday" {
				message = MsgStartTimeFormat
			} else {
				message = MsgStartTimeRequired
			}
		case "EndTime":
			if err.Tag() == "timeofday" {
				message = MsgEndTimeFormat
			} else {
				message = MsgEndTimeRequired
			}
		case "Venue":
			message = MsgVenueRequired
		case "Group":
			message = MsgGroupRequired
		case "ResourceCount":
			message = MsgResourceCountRange
		}

		result = append(result, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return result
}
