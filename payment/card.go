package payment

import (
	"errors"
	"regexp"
	"time"

	"github.com/HimashaKodikara/ShuttlemateClient-sub000/models"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{4}-?\d{4}-?\d{4}-?\d{4}$`)
	cvcPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

var (
	ErrCardIncomplete = errors.New("card details are incomplete")
	ErrCardNumber     = errors.New("invalid card number")
	ErrCardExpiry     = errors.New("invalid or past card expiry")
	ErrCardCVC        = errors.New("invalid card security code")
)

// ValidateCard checks the collected card input before any network call
// is made. Number format: 16 digits, optionally dash-separated.
func ValidateCard(card models.CardDetails, now time.Time) error {
	if !card.Complete {
		return ErrCardIncomplete
	}
	if !cardNumberPattern.MatchString(card.Number) {
		return ErrCardNumber
	}
	if card.ExpMonth < 1 || card.ExpMonth > 12 {
		return ErrCardExpiry
	}
	year, month := now.Year(), int(now.Month())
	if card.ExpYear < year || (card.ExpYear == year && card.ExpMonth < month) {
		return ErrCardExpiry
	}
	if !cvcPattern.MatchString(card.CVC) {
		return ErrCardCVC
	}
	return nil
}

// MaskCardNumber masks all but the last four digits for logging.
func MaskCardNumber(number string) string {
	if len(number) < 4 {
		return "****"
	}
	return "****-****-****-" + number[len(number)-4:]
}
