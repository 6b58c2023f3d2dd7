package forms

import (
	"regexp"
	"strconv"
	"strings"
)

// Range is a parsed "min-max" budget answer.
type Range struct {
	Min int
	Max int
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Text accepts free text, optionally enforcing a minimum length in runes.
func Text(minLen int, invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		if len([]rune(in.Raw)) < minLen || in.Raw == "" {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		return in.Raw, nil
	}
}

// Float accepts any floating point number.
func Float(invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		v, err := strconv.ParseFloat(normalizeNumber(in.Raw), 64)
		if err != nil {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		return v, nil
	}
}

// NonNegativeFloat accepts a floating point number that is zero or positive.
func NonNegativeFloat(invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		v, err := strconv.ParseFloat(normalizeNumber(in.Raw), 64)
		if err != nil || v < 0 {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		return v, nil
	}
}

// BoundedInt accepts an integer within [min, max].
func BoundedInt(min, max int, invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		v, err := strconv.Atoi(in.Raw)
		if err != nil || v < min || v > max {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		return v, nil
	}
}

// BudgetRange accepts a literal "min-max" pair of integers split on a single
// hyphen, e.g. "250-350".
func BudgetRange(invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		parts := strings.Split(in.Raw, "-")
		if len(parts) != 2 {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		min, errMin := strconv.Atoi(strings.TrimSpace(parts[0]))
		max, errMax := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errMin != nil || errMax != nil || min > max {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		return Range{Min: min, Max: max}, nil
	}
}

// YesNo matches the answer against the locale's yes/no token pair. The
// comparison is case-insensitive string equality, not a boolean parse.
func YesNo(invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		switch {
		case strings.EqualFold(in.Raw, in.YesToken):
			return true, nil
		case strings.EqualFold(in.Raw, in.NoToken):
			return false, nil
		default:
			return nil, &ValidationError{MessageKey: invalidKey}
		}
	}
}

// Email performs a shape check on an email address.
func Email(invalidKey string) ValidatorFunc {
	return func(in Input) (any, error) {
		if !emailRe.MatchString(in.Raw) {
			return nil, &ValidationError{MessageKey: invalidKey}
		}
		return in.Raw, nil
	}
}

// normalizeNumber tolerates a decimal comma, common for Italian locales.
func normalizeNumber(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}
