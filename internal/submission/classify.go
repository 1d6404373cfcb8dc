package submission

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/stripscan/stripscan/internal/model"
)

// codePattern is the strict strip code format: literal prefix, 4-digit
// expiry year, 3-digit sequence number.
var codePattern = regexp.MustCompile(`^ELI-(\d{4})-\d{3}$`)

// Classification is the business outcome for one decoded payload.
type Classification struct {
	Status       string
	QRCodeValid  bool
	ErrorMessage string
}

// Classify maps a decoded payload (empty string when no code was found) and
// the current date to a business status. Pure and deterministic: identical
// inputs always yield identical outputs.
func Classify(payload string, today time.Time) Classification {
	if payload == "" {
		return Classification{
			Status:       model.StatusError,
			ErrorMessage: "no code detected",
		}
	}

	m := codePattern.FindStringSubmatch(payload)
	if m == nil {
		return Classification{
			Status:       model.StatusError,
			ErrorMessage: "invalid code format",
		}
	}

	year, _ := strconv.Atoi(m[1])
	if year < today.Year() {
		return Classification{
			Status:       model.StatusExpired,
			QRCodeValid:  true,
			ErrorMessage: fmt.Sprintf("code expired in %d", year),
		}
	}

	return Classification{
		Status:      model.StatusProcessed,
		QRCodeValid: true,
	}
}
