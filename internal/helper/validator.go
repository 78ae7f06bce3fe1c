package helper

import (
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	errwrap "github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every constructor that rejects its settings.
var ErrInvalidConfig = errwrap.New("invalid configuration")

// ErrInvalidInput is wrapped when a request payload fails validation.
var ErrInvalidInput = errwrap.New("invalid input")

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

func initValidator() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)
}

// ValidateConfig checks struct tags on cfg and returns an error wrapping
// ErrInvalidConfig with translated field messages.
func ValidateConfig(name string, cfg any) error {
	if msg := validateStruct(cfg); msg != "" {
		return errwrap.Wrap(ErrInvalidConfig, name+": "+msg)
	}
	return nil
}

// ValidateInput is ValidateConfig for request payloads.
func ValidateInput(v any) error {
	if msg := validateStruct(v); msg != "" {
		return errwrap.Wrap(ErrInvalidInput, msg)
	}
	return nil
}

func validateStruct(v any) string {
	validateOnce.Do(initValidator)

	err := validate.Struct(v)
	if err == nil {
		return ""
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(translator))
	}
	return strings.Join(msgs, "; ")
}
