package domain

import (
	"math"
	"time"
)

// ProgressRecord tracks reading progress for one book.
// It is created the first time a book is loaded and is never advanced by
// playback; CompletedDuration <= TotalDuration is not enforced.
type ProgressRecord struct {
	BookID            string    `json:"book_id"`
	TotalDuration     int       `json:"total_duration"`     // seconds
	CompletedDuration int       `json:"completed_duration"` // seconds
	ChaptersCompleted int       `json:"chapters_completed"`
	LastPosition      float64   `json:"last_position"`
	StartedAt         time.Time `json:"started_at"`
}

// NewProgressRecord starts tracking progress for a book.
func NewProgressRecord(book Book, now time.Time) *ProgressRecord {
	return &ProgressRecord{
		BookID:        book.ID,
		TotalDuration: book.Duration,
		StartedAt:     now,
	}
}

// Percent returns completion as a rounded percentage.
// A zero total duration reports 0.
func (p ProgressRecord) Percent() int {
	if p.TotalDuration <= 0 {
		return 0
	}
	return int(math.Round(float64(p.CompletedDuration) / float64(p.TotalDuration) * 100))
}

// Remaining returns the unread duration in seconds.
func (p ProgressRecord) Remaining() int {
	return p.TotalDuration - p.CompletedDuration
}

// DaysReading returns the number of started days since StartedAt, rounded up.
func (p ProgressRecord) DaysReading(now time.Time) int {
	elapsed := now.Sub(p.StartedAt)
	if elapsed <= 0 {
		return 0
	}
	return int(math.Ceil(elapsed.Hours() / 24))
}

// AverageMinutesPerDay returns the rounded completed minutes per reading day.
// ok is false when no day has elapsed yet.
func (p ProgressRecord) AverageMinutesPerDay(now time.Time) (minutes int, ok bool) {
	days := p.DaysReading(now)
	if days <= 0 {
		return 0, false
	}
	return int(math.Round(float64(p.CompletedDuration) / float64(days) / 60)), true
}
