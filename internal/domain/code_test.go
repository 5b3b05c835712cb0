package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitalRoot(t *testing.T) {
	t.Run("KnownValues", func(t *testing.T) {
		assert.Equal(t, 1, DigitalRoot(1))
		assert.Equal(t, 9, DigitalRoot(9))
		assert.Equal(t, 1, DigitalRoot(10))
		assert.Equal(t, 2, DigitalRoot(110))
		assert.Equal(t, 5, DigitalRoot(77))
		assert.Equal(t, 9, DigitalRoot(999))
	})

	t.Run("AlwaysSingleDigit", func(t *testing.T) {
		for n := 1; n <= 999; n++ {
			r := DigitalRoot(n)
			assert.GreaterOrEqual(t, r, 1, "base %d", n)
			assert.LessOrEqual(t, r, 9, "base %d", n)
			assert.Equal(t, r, DigitalRoot(n), "base %d not stable", n)
		}
	})
}

func TestFormatCode(t *testing.T) {
	t.Run("DefaultPrefix", func(t *testing.T) {
		code, err := FormatCode("", "110")
		assert.NoError(t, err)
		assert.Equal(t, "*001*1102#", code)
	})

	t.Run("CustomPrefix", func(t *testing.T) {
		code, err := FormatCode("*384*", "007")
		assert.NoError(t, err)
		assert.Equal(t, "*384*0077#", code)
	})

	t.Run("BadBase", func(t *testing.T) {
		_, err := FormatCode("", "000")
		assert.Error(t, err)
		_, err = FormatCode("", "12")
		assert.Error(t, err)
	})
}

func TestParseCode(t *testing.T) {
	t.Run("FullCode", func(t *testing.T) {
		base, checksum, err := ParseCode("*001*1102#")
		assert.NoError(t, err)
		assert.Equal(t, "110", base)
		assert.Equal(t, 2, checksum)
	})

	t.Run("WithoutHash", func(t *testing.T) {
		base, checksum, err := ParseCode("*001*0011")
		assert.NoError(t, err)
		assert.Equal(t, "001", base)
		assert.Equal(t, 1, checksum)
	})

	t.Run("BareDigits", func(t *testing.T) {
		base, checksum, err := ParseCode("9999#")
		assert.NoError(t, err)
		assert.Equal(t, "999", base)
		assert.Equal(t, 9, checksum)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, _, err := ParseCode("*001*12#")
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("ZeroBase", func(t *testing.T) {
		_, _, err := ParseCode("*001*0009#")
		assert.Error(t, err)
	})
}

func TestVerifyChecksum(t *testing.T) {
	t.Run("MatchesDigitalRoot", func(t *testing.T) {
		ok, err := VerifyChecksum("110", 2)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WrongDigit", func(t *testing.T) {
		ok, err := VerifyChecksum("110", 3)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("RoundTripsWithFormat", func(t *testing.T) {
		for n := 1; n <= 999; n++ {
			padded := fmt.Sprintf("%03d", n)
			code, err := FormatCode("", padded)
			assert.NoError(t, err)
			base, checksum, err := ParseCode(code)
			assert.NoError(t, err)
			assert.Equal(t, padded, base)
			ok, err := VerifyChecksum(base, checksum)
			assert.NoError(t, err)
			assert.True(t, ok, "base %s", padded)
		}
	})
}
