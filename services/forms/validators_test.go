package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func in(raw string) Input {
	return Input{Raw: raw, Lang: "en", YesToken: "yes", NoToken: "no"}
}

func TestTextMinimumLength(t *testing.T) {
	v := Text(5, "too_short")

	_, err := v(in("abc"))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "too_short", verr.MessageKey)

	got, err := v(in("long enough"))
	require.NoError(t, err)
	assert.Equal(t, "long enough", got)
}

func TestFloatAcceptsDecimalComma(t *testing.T) {
	v := Float("bad")

	got, err := v(in("1234,56"))
	require.NoError(t, err)
	assert.Equal(t, 1234.56, got)
}

func TestNonNegativeFloat(t *testing.T) {
	v := NonNegativeFloat("bad")

	got, err := v(in("0"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = v(in("-1"))
	assert.Error(t, err)

	_, err = v(in("abc"))
	assert.Error(t, err)
}

func TestBoundedInt(t *testing.T) {
	v := BoundedInt(16, 100, "invalid_age")

	got, err := v(in("16"))
	require.NoError(t, err)
	assert.Equal(t, 16, got)

	got, err = v(in("100"))
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	for _, raw := range []string{"15", "101", "abc", "17.5", ""} {
		_, err := v(in(raw))
		assert.Errorf(t, err, "raw %q", raw)
	}
}

func TestBudgetRange(t *testing.T) {
	v := BudgetRange("invalid_budget_range")

	got, err := v(in("250-350"))
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 250, Max: 350}, got)

	got, err = v(in("250 - 350"))
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 250, Max: 350}, got)

	for _, raw := range []string{"350-250", "250", "a-b", "100-200-300", ""} {
		_, err := v(in(raw))
		var verr *ValidationError
		require.ErrorAsf(t, err, &verr, "raw %q", raw)
		assert.Equal(t, "invalid_budget_range", verr.MessageKey)
	}
}

func TestYesNoTokens(t *testing.T) {
	v := YesNo("invalid_yes_no")

	got, err := v(in("yes"))
	require.NoError(t, err)
	assert.Equal(t, true, got)

	got, err = v(in("NO"))
	require.NoError(t, err)
	assert.Equal(t, false, got)

	// Locale tokens, not literal yes/no.
	got, err = v(Input{Raw: "بله", YesToken: "بله", NoToken: "خیر"})
	require.NoError(t, err)
	assert.Equal(t, true, got)

	_, err = v(in("maybe"))
	assert.Error(t, err)
}

func TestEmailShape(t *testing.T) {
	v := Email("invalid_email")

	got, err := v(in("student@uni.it"))
	require.NoError(t, err)
	assert.Equal(t, "student@uni.it", got)

	for _, raw := range []string{"plain", "a@b", "a b@c.d", "@c.d"} {
		_, err := v(in(raw))
		assert.Errorf(t, err, "raw %q", raw)
	}
}
