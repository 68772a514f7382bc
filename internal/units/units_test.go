package units

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "bad test literal %q", s)
	return v
}

func TestToSmallest(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.5", "500000000000000000"},
		{"1", "1000000000000000000"},
		{"1.", "1000000000000000000"},
		{".25", "250000000000000000"},
		{"0", "0"},
		{"000.000", "0"},
		{" 2.75 ", "2750000000000000000"},
		{"+3", "3000000000000000000"},
		{"0.000000000000000001", "1"},
		{"123456789.123456789", "123456789123456789000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToSmallest(tt.in, 18)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestToSmallestRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"", " ", ".", "-1", "abc", "1,5", "1e18", "1.2.3", "0x10",
		"0.0000000000000000001", // 19 decimal places
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ToSmallest(in, 18)
			require.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestToSmallestOtherDecimals(t *testing.T) {
	got, err := ToSmallest("12.34", 6)
	require.NoError(t, err)
	assert.Equal(t, "12340000", got.String())

	_, err = ToSmallest("1.5", 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "0.000000000000000001"},
		{"1000000000000000000", "1"},
		{"5000000000000000000", "5"},
		{"1234500000000000000", "1.2345"},
		{"-1500000000000000000", "-1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(mustBig(t, tt.in), 18))
		})
	}
	assert.Equal(t, "0", Format(nil, 18))
}

func TestFormatTrim(t *testing.T) {
	v := mustBig(t, "1234567890000000000")
	assert.Equal(t, "1.2345", FormatTrim(v, 18, 4))
	assert.Equal(t, "1", FormatTrim(v, 18, 0))
	assert.Equal(t, "1", FormatTrim(mustBig(t, "1000010000000000000"), 18, 4))
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []struct{ in, canonical string }{
		{"0.5", "0.5"},
		{"1.000", "1"},
		{".1", "0.1"},
		{"42", "42"},
		{"0.000000000000000001", "0.000000000000000001"},
		{"98765.432109876543210987", ""}, // too precise, rejected
	} {
		wei, err := ToSmallest(in.in, 18)
		if in.canonical == "" {
			require.ErrorIs(t, err, ErrInvalidAmount)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, in.canonical, Format(wei, 18), "round trip of %q", in.in)
	}
}
