package weather

import "time"

// MaxForecastDays is the number of daily summaries kept after aggregation.
const MaxForecastDays = 5

// AggregateDaily folds 3-hour forecast samples into per-day summaries.
//
// Samples are grouped by their calendar date in loc (time.Local when nil).
// The first sample seen for a date fixes the summary's timestamp, icon and
// description; later samples of that date only widen TempMax/TempMin.
// Days are returned in the order they first appear in samples and at most
// MaxForecastDays are kept.
func AggregateDaily(samples []ForecastSample, loc *time.Location) []DailySummary {
	if loc == nil {
		loc = time.Local
	}

	days := make([]DailySummary, 0, MaxForecastDays)
	index := make(map[string]int)

	for _, s := range samples {
		key := s.Time(loc).Format("2006-01-02")

		i, seen := index[key]
		if !seen {
			index[key] = len(days)
			days = append(days, DailySummary{
				Timestamp:   s.Timestamp,
				Icon:        s.Icon,
				TempMax:     s.TempMax,
				TempMin:     s.TempMin,
				Description: s.Description,
			})
			continue
		}

		d := &days[i]
		if s.TempMax > d.TempMax {
			d.TempMax = s.TempMax
		}
		if s.TempMin < d.TempMin {
			d.TempMin = s.TempMin
		}
	}

	if len(days) > MaxForecastDays {
		days = days[:MaxForecastDays]
	}
	return days
}

// Hourly returns the first n samples of the forecast, the "next 24 hours"
// strip when n is 8.
func Hourly(samples []ForecastSample, n int) []ForecastSample {
	if n < 0 {
		n = 0
	}
	if len(samples) < n {
		n = len(samples)
	}
	return samples[:n]
}
