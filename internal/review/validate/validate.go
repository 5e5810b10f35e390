// Package validate holds the self-contained field rules for registration
// updates: format, range, and checksum checks that need no external lookup.
// Every function either returns the normalized value or a field-scoped
// domain error; nothing here touches shared state.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	dErrors "emend/pkg/domain-errors"
)

var (
	emailRe      = regexp.MustCompile(`^([\w-]+(?:\.[\w-]+)*)@((?:[\w-]+\.)*\w[\w-]{2,66})\.([a-z]{2,3}(?:\.[a-z]{2})?)$`)
	phoneRe      = regexp.MustCompile(`^\+\d+$`)
	zipCodeRe    = regexp.MustCompile(`^[0-9]{5}-[0-9]{3}$`)
	nameRe       = regexp.MustCompile(`^[a-zA-ZáéíóúãẽĩõũâêîôûçÁÉÍÓÚÃẼĨÕŨÂÊÎÔÛÇ\s]+$`)
	countryRe    = regexp.MustCompile(`^[A-Z]{3}$`)
	stateRe      = regexp.MustCompile(`^[A-Z]{2}$`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)
	documentTrim = strings.NewReplacer(".", "", "-", "", "/", "")
)

// highRiskActivities is the locally enumerated set of occupation codes the
// desk refuses outright. Membership here short-circuits before any
// reference-table lookup.
var highRiskActivities = map[int64]struct{}{
	101: {}, // arms and ammunition trade
	102: {}, // precious metals and gems trade
	103: {}, // currency exchange bureau
	104: {}, // gambling and betting
	105: {}, // private security transport
}

// CPF normalizes and checksum-validates an 11-digit personal identifier.
// Digit palindromes (all-same and mirrored sequences) are rejected before
// the weighted checksum runs.
func CPF(raw string) (string, error) {
	cpf := nonDigitRe.ReplaceAllString(raw, "")
	if len(cpf) != 11 {
		return "", dErrors.New(dErrors.CodeValidation, "invalid cpf")
	}
	if isPalindrome(cpf) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid cpf")
	}

	digits := toDigits(cpf)
	first := checkDigit(digits[:9], 10)
	second := checkDigit(append(digits[:9:9], int8(first)), 11)
	if int(digits[9]) != first || int(digits[10]) != second {
		return "", dErrors.New(dErrors.CodeValidation, "invalid cpf")
	}
	return cpf, nil
}

// cnpj check digit weight vectors, most significant digit first.
var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// CNPJ normalizes and checksum-validates a 14-digit business identifier.
func CNPJ(raw string) (string, error) {
	cnpj := nonDigitRe.ReplaceAllString(raw, "")
	if len(cnpj) != 14 {
		return "", dErrors.New(dErrors.CodeValidation, "invalid cnpj")
	}
	if isPalindrome(cnpj) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid cnpj")
	}

	digits := toDigits(cnpj)
	first := weightedDigit(digits[:12], cnpjFirstWeights)
	second := weightedDigit(append(digits[:12:12], int8(first)), cnpjSecondWeights)
	if int(digits[12]) != first || int(digits[13]) != second {
		return "", dErrors.New(dErrors.CodeValidation, "invalid cnpj")
	}
	return cnpj, nil
}

// Email performs an anchored local-part/domain/TLD shape check.
func Email(email string) (string, error) {
	if !emailRe.MatchString(email) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid email address")
	}
	return email, nil
}

// CelPhone validates a +-prefixed mobile number of exactly 14 characters.
func CelPhone(phone string) (string, error) {
	return phoneOfLength(phone, 14, 14)
}

// Phone validates a +-prefixed landline or mobile number of 13 or 14 characters.
func Phone(phone string) (string, error) {
	return phoneOfLength(phone, 13, 14)
}

func phoneOfLength(phone string, min, max int) (string, error) {
	if len(phone) < min || len(phone) > max || !phoneRe.MatchString(phone) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid phone number")
	}
	return phone, nil
}

// ZipCode validates the NNNNN-NNN postal code pattern.
func ZipCode(zip string) (string, error) {
	if !zipCodeRe.MatchString(zip) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid zip code")
	}
	return zip, nil
}

// PersonName validates letters (including accented Latin) and spaces, max 60.
func PersonName(name string) (string, error) {
	if name == "" || len([]rune(name)) > 60 || !nameRe.MatchString(name) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid name")
	}
	return name, nil
}

// Country validates a 3-letter uppercase country code.
func Country(code string) (string, error) {
	if !countryRe.MatchString(code) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid country acronym")
	}
	return code, nil
}

// State validates a 2-letter uppercase state code.
func State(code string) (string, error) {
	if !stateRe.MatchString(code) {
		return "", dErrors.New(dErrors.CodeValidation, "invalid state acronym")
	}
	return code, nil
}

// BoundedText validates free text within [min, max] runes.
func BoundedText(field, value string, min, max int) (string, error) {
	n := len([]rune(value))
	if n < min || n > max {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid %s", field))
	}
	return value, nil
}

// Timestamp validates that an epoch-seconds value converts to a sane calendar date.
// A bad timestamp is a validation error, never a panic.
func Timestamp(epoch int64) (time.Time, error) {
	t := time.Unix(epoch, 0).UTC()
	if t.Year() < 1800 || t.Year() > 9999 {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, "wrong timestamp supplied")
	}
	return t, nil
}

// DocumentNumber strips the usual punctuation from an identity document number.
func DocumentNumber(raw string) (string, error) {
	number := documentTrim.Replace(raw)
	if number == "" {
		return "", dErrors.New(dErrors.CodeValidation, "invalid document number")
	}
	return number, nil
}

// Activity rejects occupation codes in the locally enumerated high-risk set.
// Existence of the code is the reference gate's concern, not this check's.
func Activity(code int64) (int64, error) {
	if _, banned := highRiskActivities[code]; banned {
		return 0, dErrors.New(dErrors.CodeHighRiskActivity, "high risk occupation not allowed")
	}
	return code, nil
}

func isPalindrome(s string) bool {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		if s[i] != s[j] {
			return false
		}
	}
	return true
}

func toDigits(s string) []int8 {
	digits := make([]int8, len(s))
	for i := range s {
		digits[i] = int8(s[i] - '0')
	}
	return digits
}

// checkDigit computes a modulus-11 check digit with descending weights
// starting at startWeight, clamped to 0 when the remainder exceeds 9.
func checkDigit(digits []int8, startWeight int) int {
	sum := 0
	weight := startWeight
	for _, d := range digits {
		sum += int(d) * weight
		weight--
	}
	digit := 11 - sum%11
	if digit > 9 {
		return 0
	}
	return digit
}

// weightedDigit computes a modulus-11 check digit with an explicit weight vector.
func weightedDigit(digits []int8, weights []int) int {
	sum := 0
	for i, d := range digits {
		sum += int(d) * weights[i]
	}
	digit := 11 - sum%11
	if digit > 9 {
		return 0
	}
	return digit
}
