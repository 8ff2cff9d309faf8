package validator

import (
	"io"
	"reflect"
	"testing"

	"examsched/pkg/logger"
	"examsched/pkg/model"
)

func testValidator(t *testing.T) *ReservationValidator {
	t.Helper()
	log := logger.New(logger.Config{Output: io.Discard})
	return NewReservationValidator(log)
}

func validCandidate() model.Candidate {
	return model.Candidate{
		Name:      "CS101 Final",
		Date:      "2026-06-15",
		StartTime: "09:00",
		EndTime:   "11:00",
		Venue:     "Great Hall",
		Group:     "CS-Y1",
	}
}

func TestValidateCandidateValid(t *testing.T) {
	v := testValidator(t)
	c := validCandidate()

	if errs := v.ValidateCandidate(&c); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs.Messages())
	}
}

func TestValidateCandidateAllFieldsMissing(t *testing.T) {
	v := testValidator(t)
	c := model.Candidate{}

	got := v.ValidateCandidate(&c).Messages()
	want := []string{
		MsgNameRequired,
		MsgDateRequired,
		MsgStartTimeRequired,
		MsgEndTimeRequired,
		MsgVenueRequired,
		MsgGroupRequired,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("messages = %v, want %v", got, want)
	}
}

func TestValidateCandidateFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Candidate)
		want   []string
	}{
		{
			name:   "missing name only",
			mutate: func(c *model.Candidate) { c.Name = "" },
			want:   []string{MsgNameRequired},
		},
		{
			name:   "malformed start time",
			mutate: func(c *model.Candidate) { c.StartTime = "9am" },
			want:   []string{MsgStartTimeFormat},
		},
		{
			name:   "malformed end time",
			mutate: func(c *model.Candidate) { c.EndTime = "25:00" },
			want:   []string{MsgEndTimeFormat},
		},
		{
			name: "end equals start",
			mutate: func(c *model.Candidate) {
				c.StartTime = "09:00"
				c.EndTime = "09:00"
			},
			want: []string{MsgEndBeforeStart},
		},
		{
			name: "end before start",
			mutate: func(c *model.Candidate) {
				c.StartTime = "11:00"
				c.EndTime = "09:00"
			},
			want: []string{MsgEndBeforeStart},
		},
		{
			name:   "negative resource count",
			mutate: func(c *model.Candidate) { c.ResourceCount = -1 },
			want:   []string{MsgResourceCountRange},
		},
		{
			name: "missing venue with bad ordering",
			mutate: func(c *model.Candidate) {
				c.Venue = ""
				c.StartTime = "11:00"
				c.EndTime = "09:00"
			},
			want: []string{MsgVenueRequired, MsgEndBeforeStart},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testValidator(t)
			c := validCandidate()
			tt.mutate(&c)

			got := v.ValidateCandidate(&c).Messages()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("messages = %v, want %v", got, tt.want)
			}
		})
	}
}

// A blank time reports only requiredness; a malformed one reports only
// the format. The two failure modes never stack on a single field.
func TestValidateCandidateTimeErrorsDoNotStack(t *testing.T) {
	v := testValidator(t)

	c := validCandidate()
	c.StartTime = ""
	got := v.ValidateCandidate(&c).Messages()
	if !reflect.DeepEqual(got, []string{MsgStartTimeRequired}) {
		t.Errorf("blank start time: %v, want only requiredness", got)
	}

	c = validCandidate()
	c.StartTime = "garbage"
	got = v.ValidateCandidate(&c).Messages()
	if !reflect.DeepEqual(got, []string{MsgStartTimeFormat}) {
		t.Errorf("malformed start time: %v, want only format", got)
	}
}

func TestNormalize(t *testing.T) {
	v := testValidator(t)

	c := model.Candidate{
		Name:      "  CS101   Final  ",
		Date:      " 2026-06-15 ",
		StartTime: " 09:00 ",
		EndTime:   " 11:00 ",
		Venue:     "  Great   Hall ",
		Group:     " CS-Y1 ",
	}
	v.Normalize(&c)

	want := validCandidate()
	if c != want {
		t.Errorf("Normalize() = %+v, want %+v", c, want)
	}
}

// Whitespace-only fields normalize to empty and then fail requiredness.
func TestNormalizeThenValidateWhitespaceOnly(t *testing.T) {
	v := testValidator(t)

	c := validCandidate()
	c.Name = "   "
	v.Normalize(&c)

	got := v.ValidateCandidate(&c).Messages()
	if !reflect.DeepEqual(got, []string{MsgNameRequired}) {
		t.Errorf("messages = %v, want [%s]", got, MsgNameRequired)
	}
}
