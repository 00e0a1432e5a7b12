// Package validation validates collection records with go-playground/validator.
//
// A single validator instance is shared by the process. It knows the custom
// tags used on model types:
//
//	nature      a nature name known to the stat calculator
//	project     one of the closed set of collection projects
//	caughtdate  a date in one of the accepted capture date layouts
//
// Stat spreads on model.Pokemon and model.Edit are checked at struct level:
// IVs lie in 0..31, EVs in 0..252 and the EV total is at most 510.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/okian/dexkeeper/internal/domain/model"
	"github.com/okian/dexkeeper/internal/domain/stat"
)

// Struct-level tags.
const (
	TagIVRange = "ivrange"
	TagEVRange = "evrange"
	TagEVTotal = "evtotal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is returned by ValidateStruct when one or more rules fail.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)

		mustRegister(v, "nature", func(fl validator.FieldLevel) bool {
			_, ok := stat.LookupNature(fl.Field().String())
			return ok
		})
		mustRegister(v, "project", func(fl validator.FieldLevel) bool {
			return model.Project(fl.Field().String()).Valid()
		})
		mustRegister(v, "caughtdate", func(fl validator.FieldLevel) bool {
			_, ok := model.Pokemon{CaughtDate: fl.Field().String()}.CaughtAt()
			return ok
		})

		v.RegisterStructValidation(func(sl validator.StructLevel) {
			p, _ := sl.Current().Interface().(model.Pokemon)
			checkSpread(sl, p.IVs, p.EVs)
		}, model.Pokemon{})
		v.RegisterStructValidation(func(sl validator.StructLevel) {
			e, _ := sl.Current().Interface().(model.Edit)
			checkSpread(sl, e.IVs, e.EVs)
		}, model.Edit{})

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// jsonName reports fields by their JSON name.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func checkSpread(sl validator.StructLevel, ivs, evs stat.StatSet) {
	for _, s := range stat.Stats() {
		if iv := ivs.Get(s); iv < 0 || iv > stat.MaxIV {
			sl.ReportError(iv, "ivs."+string(s), "IVs", TagIVRange, fmt.Sprint(stat.MaxIV))
		}
		if ev := evs.Get(s); ev < 0 || ev > stat.MaxEV {
			sl.ReportError(ev, "evs."+string(s), "EVs", TagEVRange, fmt.Sprint(stat.MaxEV))
		}
	}
	if total := evs.Total(); total > stat.MaxEVTotal {
		sl.ReportError(total, "evs", "EVs", TagEVTotal, fmt.Sprint(stat.MaxEVTotal))
	}
}

// ValidateStruct validates s with the shared validator. It returns nil or an *Error.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: translate(fe)}
	}
	return out
}

var messages = map[string]string{
	"required":   "%s is required",
	"nature":     "%s must be a known nature",
	"project":    "%s must be one of Competitive, Shiny Living Dex, Living Dex, Trophy, Other",
	"caughtdate": "%s must be a date like 2006-01-02 or an RFC3339 timestamp, no earlier than 1996-01-01",
}

var messagesWithParam = map[string]string{
	"min":      "%s must be at least %s",
	TagIVRange: "%s must be between 0 and %s",
	TagEVRange: "%s must be between 0 and %s",
	TagEVTotal: "%s must total at most %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if tmpl, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, field, fe.Param())
	}
	if fe.Tag() == "max" {
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
		case reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
