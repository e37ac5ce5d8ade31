package catalog

import "github.com/hperssn/meditate/internal/domain"

// FallbackSessions is the demo set shown when the database cannot be read.
func FallbackSessions() []domain.SessionRecord {
	return []domain.SessionRecord{
		{Title: "Morning Calm", DurationMinutes: 10, Kind: domain.KindGuided, Description: "Relax and focus your mind"},
		{Title: "Deep Breathing", DurationMinutes: 5, Kind: domain.KindBreathing, Description: "4-7-8 technique"},
		{Title: "Sleep Meditation", DurationMinutes: 15, Kind: domain.KindGuided, Description: "Perfect for bedtime"},
		{Title: "Stress Relief", DurationMinutes: 8, Kind: domain.KindBreathing, Description: "Calm your nervous system"},
		{Title: "Anxiety Relief", DurationMinutes: 12, Kind: domain.KindGuided, Description: "Release worry and fear"},
	}
}
