// Package availability computes the bookable time slots for a provider on a
// calendar date by intersecting the weekly work schedule with one-off
// exceptions and already-booked appointments.
package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/reservalo/booking-api/cache"
	"github.com/reservalo/booking-api/models"
	"github.com/reservalo/booking-api/utils"
)

// Slot is a bookable time range surfaced to clients, "HH:MM" in 24h format.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DayInput carries everything slot resolution needs for one provider-day.
type DayInput struct {
	IsWorkingDay bool
	Slots        []models.AvailableSlot // already filtered to is_available
	DayBlocked   bool
	Frames       []models.UnavailableTimeFrame
	BookedStarts []string // starts of non-cancelled appointments
}

// Compute resolves the bookable slots from already-fetched inputs:
// unavailable time frames are subtracted from the configured ranges
// (containment removes a range, partial overlap clips it, an interior frame
// splits it in two), then any range whose start matches a booked appointment
// is dropped. The result is ordered by start time. Overlapping configured
// ranges are not merged; they surface as configured.
func Compute(in DayInput) []Slot {
	if !in.IsWorkingDay || in.DayBlocked {
		return []Slot{}
	}

	var candidates []timeRange
	for _, s := range in.Slots {
		r, err := parseRange(s.StartTime, s.EndTime)
		if err != nil {
			continue // malformed configuration rows are skipped
		}
		candidates = append(candidates, r)
	}

	var frames []timeRange
	for _, f := range in.Frames {
		r, err := parseRange(f.StartTime, f.EndTime)
		if err != nil {
			continue
		}
		frames = append(frames, r)
	}

	remaining := subtractFrames(candidates, frames)

	booked := make(map[int]bool, len(in.BookedStarts))
	for _, s := range in.BookedStarts {
		if m, err := utils.ParseClock(s); err == nil {
			booked[m] = true
		}
	}

	out := make([]Slot, 0, len(remaining))
	for _, r := range remaining {
		if booked[r.start] {
			continue
		}
		out = append(out, Slot{
			StartTime: utils.FormatClock(r.start),
			EndTime:   utils.FormatClock(r.end),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// timeRange is a half-open [start, end) interval in minutes past midnight.
type timeRange struct {
	start, end int
}

func parseRange(start, end string) (timeRange, error) {
	s, err := utils.ParseClock(start)
	if err != nil {
		return timeRange{}, err
	}
	e, err := utils.ParseClock(end)
	if err != nil {
		return timeRange{}, err
	}
	if e <= s {
		return timeRange{}, fmt.Errorf("empty range %s-%s", start, end)
	}
	return timeRange{start: s, end: e}, nil
}

func subtractFrames(ranges, frames []timeRange) []timeRange {
	for _, f := range frames {
		var next []timeRange
		for _, r := range ranges {
			next = append(next, subtractOne(r, f)...)
		}
		ranges = next
	}
	return ranges
}

func subtractOne(r, f timeRange) []timeRange {
	if f.end <= r.start || f.start >= r.end {
		return []timeRange{r}
	}
	var out []timeRange
	if f.start > r.start {
		out = append(out, timeRange{r.start, f.start})
	}
	if f.end < r.end {
		out = append(out, timeRange{f.end, r.end})
	}
	return out
}

// ScheduleCacheKey is the cache key holding a provider's weekly schedule.
// Schedule-mutating writes must invalidate it.
func ScheduleCacheKey(providerID uint) string {
	return fmt.Sprintf("schedule:%d", providerID)
}

// ScheduleCacheTTL bounds staleness if an invalidation is ever missed.
const ScheduleCacheTTL = time.Hour

// Resolver resolves availability against the database, reading the weekly
// schedule through the cache when one is attached. Exceptions and booked
// appointments are always read live.
type Resolver struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewResolver(gdb *gorm.DB, c *cache.Cache) *Resolver {
	return &Resolver{DB: gdb, Cache: c}
}

// ResolveDay returns the ordered bookable slots for (provider, date).
// Past dates resolve like any other; callers filter if they need to.
func (r *Resolver) ResolveDay(ctx context.Context, providerID uint, date string) ([]Slot, error) {
	if r.Cache == nil {
		return ResolveDay(r.DB, providerID, date)
	}

	var week []models.WorkSchedule
	err := r.Cache.GetOrSet(ctx, ScheduleCacheKey(providerID), ScheduleCacheTTL, &week, func() (interface{}, error) {
		return fetchWeek(r.DB, providerID)
	})
	if err != nil {
		return nil, err
	}
	return resolveWithWeek(r.DB, providerID, date, week)
}

// ResolveDay resolves availability with direct database reads. The booking
// transaction uses this form so the re-check sees current rows.
func ResolveDay(gdb *gorm.DB, providerID uint, date string) ([]Slot, error) {
	week, err := fetchWeek(gdb, providerID)
	if err != nil {
		return nil, err
	}
	return resolveWithWeek(gdb, providerID, date, week)
}

func fetchWeek(gdb *gorm.DB, providerID uint) ([]models.WorkSchedule, error) {
	var week []models.WorkSchedule
	err := gdb.Preload("Slots", "is_available = ?", true).
		Where("provider_id = ?", providerID).
		Find(&week).Error
	if err != nil {
		return nil, fmt.Errorf("fetch work schedule: %w", err)
	}
	return week, nil
}

func resolveWithWeek(gdb *gorm.DB, providerID uint, date string, week []models.WorkSchedule) ([]Slot, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}
	weekday := models.DayOfWeek(day.Weekday())

	in := DayInput{}
	for _, ws := range week {
		if ws.DayOfWeek == weekday {
			in.IsWorkingDay = ws.IsWorkingDay
			in.Slots = ws.Slots
			break
		}
	}
	if !in.IsWorkingDay {
		return []Slot{}, nil
	}

	var blocked int64
	if err := gdb.Model(&models.UnavailableDay{}).
		Where("provider_id = ? AND date = ?", providerID, date).
		Count(&blocked).Error; err != nil {
		return nil, fmt.Errorf("fetch unavailable days: %w", err)
	}
	in.DayBlocked = blocked > 0
	if in.DayBlocked {
		return []Slot{}, nil
	}

	if err := gdb.Where("provider_id = ? AND date = ?", providerID, date).
		Find(&in.Frames).Error; err != nil {
		return nil, fmt.Errorf("fetch unavailable time frames: %w", err)
	}

	if err := gdb.Model(&models.Appointment{}).
		Where("provider_id = ? AND date = ? AND status <> ?", providerID, date, models.StatusCancelled).
		Pluck("start_time", &in.BookedStarts).Error; err != nil {
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}

	return Compute(in), nil
}
