// Package validation wires request validation rules into gin's validator
// and renders validation failures as short human-readable messages.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxUsernameRunes mirrors the users.username column size.
const MaxUsernameRunes = 100

var once sync.Once

// Setup registers the custom rules on gin's default validator.
// It is safe to call more than once.
func Setup() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: gin validator engine is not go-playground/validator")
	}
	var err error
	once.Do(func() { err = Register(v) })
	return err
}

// Register adds the custom tags to v and reports fields by their json name.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v.RegisterValidation("username", validUsername)
}

// validUsername: not blank, at most MaxUsernameRunes runes, no control characters.
func validUsername(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" || !utf8.ValidString(s) {
		return false
	}
	if utf8.RuneCountInString(s) > MaxUsernameRunes {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// Message turns a binding error into a message safe to return to clients.
func Message(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return "invalid request body"
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, fe.Field()+" "+describe(fe))
	}
	return strings.Join(msgs, "; ")
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "username":
		return "must be 1-100 printable characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
