package observability

import (
	"strconv"
	"strings"

	"github.com/advisor-site/lead-intake/internal/logging"
	"github.com/nyaruka/phonenumbers"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskEmail keeps the first character of the local part and the domain.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

// MaskPhone keeps the country code and the last two digits. Numbers without
// a country code are parsed against the US region.
func MaskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	num, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return maskDigits(phone)
	}

	national := phonenumbers.GetNationalSignificantNumber(num)
	if len(national) < 2 {
		return maskDigits(phone)
	}
	return "+" + strconv.Itoa(int(num.GetCountryCode())) + " ***" + national[len(national)-2:]
}

func maskDigits(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 2 {
		return "***"
	}
	return "***" + string(digits[len(digits)-2:])
}
