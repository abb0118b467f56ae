package service

import (
	"errors"
	"log"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"study-planner/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report form field names instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// NewSubject carries the add-subject form.
type NewSubject struct {
	Name string `form:"name" json:"name" validate:"required"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = cleanString(ns.Name)
	return validate.Struct(ns)
}

// NewTask carries the add-task form. SubjectID and Deadline are raw text.
type NewTask struct {
	Title     string `form:"title" json:"title" validate:"required"`
	SubjectID string `form:"subject_id" json:"subject_id" validate:"required"`
	Deadline  string `form:"deadline" json:"deadline" validate:"required"`
}

func (nt *NewTask) Validate() error {
	nt.Title = cleanString(nt.Title)
	nt.SubjectID = cleanString(nt.SubjectID)
	nt.Deadline = cleanString(nt.Deadline)
	return validate.Struct(nt)
}

// NewSession carries the log-session form. Notes are optional.
type NewSession struct {
	SubjectID string `form:"subject_id" json:"subject_id" validate:"required"`
	Duration  string `form:"duration" json:"duration" validate:"required"`
	Notes     string `form:"notes" json:"notes"`
}

func (ns *NewSession) Validate() error {
	ns.SubjectID = cleanString(ns.SubjectID)
	ns.Duration = cleanString(ns.Duration)
	ns.Notes = cleanString(ns.Notes)
	return validate.Struct(ns)
}

// skipMissing reports whether err only lists absent required fields.
// Such requests are dropped without surfacing an error.
func skipMissing(op string, err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	log.Printf("[info] %s skipped: missing %s", op, strings.Join(fields, ", "))
	return true
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, &InputError{Field: field, Value: raw, Err: err}
	}
	return uint(id), nil
}

func parseDate(field, raw string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return time.Time{}, &InputError{Field: field, Value: raw, Err: err}
	}
	return d, nil
}

func parseMinutes(field, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &InputError{Field: field, Value: raw, Err: err}
	}
	return n, nil
}

// cleanString trims all leading and trailing whitespace in s.
func cleanString(s string) string {
	return strings.TrimSpace(s)
}
