package roster

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ErrEndBeforeStart rejects inverted date ranges before they reach the server.
var ErrEndBeforeStart = errors.New("end date must not be before start date")

const isoDateLayout = "2006-01-02"

type dateRangeForm struct {
	StartDate string `validate:"required,datetime=2006-01-02" label:"start date"`
	EndDate   string `validate:"required,datetime=2006-01-02" label:"end date"`
}

var (
	dateValidate *validator.Validate
	dateTrans    ut.Translator
)

func init() {
	dateValidate = validator.New(validator.WithRequiredStructEnabled())
	dateValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("label"); name != "" {
			return name
		}
		return fld.Name
	})
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	dateTrans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(dateValidate, dateTrans)
}

// ValidateDateRange checks a generate/save range: both fields present, ISO
// formatted, and end not before start. The returned message is ready to show
// to the user as-is.
func ValidateDateRange(startDate, endDate string) error {
	form := dateRangeForm{
		StartDate: strings.TrimSpace(startDate),
		EndDate:   strings.TrimSpace(endDate),
	}
	if err := dateValidate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s", verrs[0].Translate(dateTrans))
		}
		return err
	}

	start, _ := time.Parse(isoDateLayout, form.StartDate)
	end, _ := time.Parse(isoDateLayout, form.EndDate)
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}
