package tools

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1x"},
		{1.5, "1.5x"},
		{0.5, "0.5x"},
		{2.25, "2.25x"},
		{3, "3x"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSpeed(tt.in))
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{3600, "60:00"},
		{90.5, "1:30.5"},
		{math.Copysign(0, -1), "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatClock(tt.in), "formatClock(%v)", tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0h 0m"},
		{59, "0h 0m"},
		{60, "0h 1m"},
		{3600, "1h 0m"},
		{11*3600 + 30*60, "11h 30m"},
		{21*3600 + 2*60 + 59, "21h 2m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in), "formatDuration(%d)", tt.in)
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "3/5/2026", formatDate(time.Date(2026, time.March, 5, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "12/25/2025", formatDate(time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)))
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "YES", yesNo(true))
	assert.Equal(t, "NO", yesNo(false))
}
