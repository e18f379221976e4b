package cards

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidCard is returned when a card violates its field invariants.
var ErrInvalidCard = errors.New("invalid card")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func cardValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Validate checks the card invariants: non-blank front/back, interval >= 1,
// ease factor >= 1.3, correct reviews <= reviews, and that an unreviewed
// card is always New.
func Validate(c Card) error {
	if err := cardValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", ErrInvalidCard, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidCard, err)
	}
	if c.ReviewCount == 0 && c.Maturity != MaturityNew {
		return fmt.Errorf("%w: unreviewed card has maturity %q", ErrInvalidCard, c.Maturity)
	}
	return nil
}
