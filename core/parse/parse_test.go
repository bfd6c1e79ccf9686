package parse

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"+7", 7, false},
		{"-123", -123, false},
		{"007", 7, false},
		{"9223372036854775807", math.MaxInt64, false},
		{"-9223372036854775808", math.MinInt64, false},
		{"9223372036854775808", 0, true},
		{"", 0, true},
		{"-", 0, true},
		{"1.5", 0, true},
		{"1,000", 0, true},
		{"12a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseInt([]byte(tt.in))
			if tt.wantErr {
				var pe *ParseError
				require.Error(t, err)
				assert.True(t, errors.As(err, &pe))
				assert.Equal(t, "integer", pe.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0", 0, false},
		{"1.000000", 1, false},
		{"-0.012345", -0.012345, false},
		{"+0.5", 0.5, false},
		{".25", 0.25, false},
		{"3.", 3, false},
		{"1e3", 1000, false},
		{"2.5E-3", 0.0025, false},
		{"-1.5e+2", -150, false},
		{"0.000000000000000000000000001", 1e-27, false},
		{"123456789012345678901234", 1.23456789012345678901234e23, false},
		{"1e-320", 1e-320, false},
		{"", 0, true},
		{".", 0, true},
		{"-", 0, true},
		{"1e", 0, true},
		{"1e+", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"inf", 0, true},
		{"0x10", 0, true},
		{"1,5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFloat([]byte(tt.in))
			if tt.wantErr {
				var pe *ParseError
				require.Error(t, err)
				assert.True(t, errors.As(err, &pe))
				assert.Equal(t, "float", pe.Kind)
				return
			}
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want+1, got+1, 1e-12)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseFloat([]byte("1x"))
	require.Error(t, err)
	assert.Equal(t, `invalid float "1x": unexpected byte 'x'`, err.Error())
}

func TestFields(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single spaces", "96 0.012 2 1", []string{"96", "0.012", "2", "1"}},
		{"tabs and runs", "  96\t\t0.012   2 ", []string{"96", "0.012", "2"}},
		{"carriage return", "H 96 2 1\r", []string{"H", "96", "2", "1"}},
		{"empty", "", nil},
		{"blank", " \t ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range Fields([]byte(tt.line), nil) {
				got = append(got, string(f))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldsReusesBuffer(t *testing.T) {
	buf := make([][]byte, 0, 4)
	buf = Fields([]byte("1 2"), buf[:0])
	assert.Len(t, buf, 2)
	buf = Fields([]byte("3 4 5"), buf[:0])
	assert.Len(t, buf, 3)
	assert.Equal(t, "5", string(buf[2]))
}

func BenchmarkParseFloat(b *testing.B) {
	tok := []byte("-0.012345")
	for b.Loop() {
		_, _ = ParseFloat(tok)
	}
}

func BenchmarkParseInt(b *testing.B) {
	tok := []byte("123456")
	for b.Loop() {
		_, _ = ParseInt(tok)
	}
}
