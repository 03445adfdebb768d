package Controllers

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

var validate *validator.Validate

var translator ut.Translator

func init() {
	validate = validator.New()
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)
}

// validationErrors turns validator failures into a field -> message map for
// structured 400 responses. Validation always runs before any store call.
func validationErrors(err error) fiber.Map {
	fields := fiber.Map{}
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range errs {
			fields[fieldErr.Field()] = fieldErr.Translate(translator)
		}
	}
	return fiber.Map{
		"error":  "Validation failed",
		"fields": fields,
	}
}
