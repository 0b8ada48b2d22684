package usecase

import (
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	errwrap "github.com/pkg/errors"

	"github.com/rahmatrdn/go-flight-analytics/entity"
)

// CriteriaValidator checks search criteria before they reach a repository.
// Messages are translated so the console can echo them back verbatim.
type CriteriaValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewCriteriaValidator() *CriteriaValidator {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = entranslations.RegisterDefaultTranslations(validate, trans)
	validate.RegisterStructValidation(validDateCriteria, entity.DateCriteria{})

	return &CriteriaValidator{validate: validate, trans: trans}
}

// Check returns a human-readable error when the criteria are unusable, nil
// otherwise.
func (v *CriteriaValidator) Check(c entity.Criteria) error {
	err := v.validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errwrap.Wrap(err, "CriteriaValidator.Check")
	}

	reasons := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "calendardate" {
			reasons = append(reasons, "day, month and year do not form a calendar date")
			continue
		}
		reasons = append(reasons, fe.Translate(v.trans))
	}
	return errwrap.New(strings.Join(reasons, "; "))
}

// validDateCriteria rejects triples like 31/02/2015 that pass the per-field
// ranges but do not exist on the calendar.
func validDateCriteria(sl validator.StructLevel) {
	c := sl.Current().Interface().(entity.DateCriteria)
	if _, err := c.Date(); err != nil {
		sl.ReportError(c.Day, "Day", "Day", "calendardate", "")
	}
}
