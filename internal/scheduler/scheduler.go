package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/logger"
	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

// DayState describes whether a day has external commitments constraining it.
type DayState string

const (
	StateUnconstrained DayState = "unconstrained"
	StateConstrained   DayState = "constrained"
)

// Result summarizes what one AdjustDay pass did.
type Result struct {
	State     DayState
	Placed    int // activities placed in a gap at full current duration
	Shrunk    int // activities placed only after shrinking to their minimum
	Emergency int // activities force-placed without a fitting gap (may overlap)
	Restored  int // activities reset to their original start
}

// Scheduler re-packs a user's flexible activities around the day's fixed
// commitments. One AdjustDay call handles exactly one (user, day) pair,
// synchronously; concurrent calls for the same pair are serialized.
type Scheduler struct {
	store storage.Provider

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(store storage.Provider) *Scheduler {
	return &Scheduler{
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing adjustments of one (user, day) pair.
func (s *Scheduler) lockFor(userID, day string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userID + "/" + day
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// block is an immovable interval, in minutes since midnight.
type block struct {
	start int
	end   int
}

// timeGap is a free interval between blocks. duration is kept alongside the
// bounds because it is recomputed in place as activities consume the gap.
type timeGap struct {
	start    int
	end      int
	duration int
}

// AdjustDay re-packs the day's flexible activities around its fixed
// commitments, or restores original placements when the day has none.
func (s *Scheduler) AdjustDay(userID, day string) (Result, error) {
	lock := s.lockFor(userID, day)
	lock.Lock()
	defer lock.Unlock()

	day, err := utils.NormalizeDay(day)
	if err != nil {
		return Result{}, err
	}
	if day == constants.DayDaily {
		return Result{}, errors.New("cannot adjust the pseudo-day \"daily\"; pass a weekday")
	}

	commitments, err := s.store.GetCommitmentsForDay(userID, day)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load commitments: %w", err)
	}

	activities, err := s.store.GetActivitiesForDay(userID, day)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load activities: %w", err)
	}

	// No external commitments: the day is unconstrained, so activities go
	// back to where the user originally put them.
	if len(commitments) == 0 {
		restored, err := s.restoreOriginalTimes(activities)
		if err != nil {
			return Result{}, err
		}
		return Result{State: StateUnconstrained, Restored: restored}, nil
	}

	wake, sleep := s.wakingWindow(userID)

	blocks := collectBlocks(commitments, activities)
	gaps := findGaps(blocks, wake, sleep)

	return s.placeActivities(gaps, activities)
}

// wakingWindow resolves the user's waking window in minutes since midnight,
// falling back to the defaults when the profile is missing, unparsable, or
// describes an overnight window (sleep at or before wake), which the
// single-day arithmetic cannot represent.
func (s *Scheduler) wakingWindow(userID string) (int, int) {
	defaultWake, _ := utils.ParseClock(constants.DefaultWakeUpTime)
	defaultSleep, _ := utils.ParseClock(constants.DefaultSleepTime)

	profile, err := s.store.GetProfile(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			logger.Warn("Failed to load profile, using default waking window", "user", userID, "error", err)
		}
		return defaultWake, defaultSleep
	}

	wake := defaultWake
	if profile.WakeUpTime != "" {
		if m, err := utils.ParseClock(profile.WakeUpTime); err == nil {
			wake = m
		}
	}
	sleep := defaultSleep
	if profile.SleepTime != "" {
		if m, err := utils.ParseClock(profile.SleepTime); err == nil {
			sleep = m
		}
	}

	if sleep <= wake {
		logger.Warn("Profile waking window is overnight or empty, using defaults",
			"user", userID, "wake", profile.WakeUpTime, "sleep", profile.SleepTime)
		return defaultWake, defaultSleep
	}
	return wake, sleep
}

// collectBlocks gathers the day's immovable intervals: every active external
// commitment plus every priority-1 activity. Entries with unparsable times
// are skipped. The result is sorted by start time.
func collectBlocks(commitments []models.Commitment, activities []models.Activity) []block {
	var blocks []block

	for _, c := range commitments {
		start, err := utils.ParseClock(c.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(c.EndTime)
		if err != nil {
			continue
		}
		blocks = append(blocks, block{start: start, end: end})
	}

	for _, a := range activities {
		if !a.Fixed() {
			continue
		}
		start, err := utils.ParseClock(a.StartTime)
		if err != nil {
			continue
		}
		end, err := utils.ParseClock(a.EndTime)
		if err != nil {
			continue
		}
		blocks = append(blocks, block{start: start, end: end})
	}

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].start < blocks[j].start
	})
	return blocks
}

// findGaps computes the free intervals inside the waking window, sorted by
// duration descending so the largest gaps are offered first. Gaps between
// consecutive blocks shorter than the minimum threshold are discarded; the
// leading and trailing window gaps are always kept.
func findGaps(blocks []block, wake, sleep int) []timeGap {
	if len(blocks) == 0 {
		return []timeGap{{start: wake, end: sleep, duration: sleep - wake}}
	}

	var gaps []timeGap

	if blocks[0].start > wake {
		gaps = append(gaps, timeGap{
			start:    wake,
			end:      blocks[0].start,
			duration: blocks[0].start - wake,
		})
	}

	for i := 0; i < len(blocks)-1; i++ {
		currentEnd := blocks[i].end
		nextStart := blocks[i+1].start
		if nextStart > currentEnd {
			duration := nextStart - currentEnd
			if duration >= constants.MinGapMinutes {
				gaps = append(gaps, timeGap{start: currentEnd, end: nextStart, duration: duration})
			}
		}
	}

	if last := blocks[len(blocks)-1]; last.end < sleep {
		gaps = append(gaps, timeGap{start: last.end, end: sleep, duration: sleep - last.end})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].duration > gaps[j].duration
	})
	return gaps
}

// placeActivities assigns each movable activity a slot. Activities are
// processed in ascending priority-level order, ties keeping their original
// (start-time) order. The gap list is scanned in its duration-descending
// order and is deliberately not re-sorted after a gap shrinks; later scans
// follow list order, reproducing the planner's established placement.
func (s *Scheduler) placeActivities(gaps []timeGap, activities []models.Activity) (Result, error) {
	result := Result{State: StateConstrained}

	var flexible []models.Activity
	for _, a := range activities {
		if a.Movable() {
			flexible = append(flexible, a)
		}
	}

	sort.SliceStable(flexible, func(i, j int) bool {
		return flexible[i].PriorityLevel < flexible[j].PriorityLevel
	})

	for i := range flexible {
		activity := &flexible[i]

		placed := false
		for g := range gaps {
			if gaps[g].duration < activity.DurationMin {
				continue
			}
			if err := s.placeInGap(activity, gaps[g].start); err != nil {
				return result, err
			}
			// Consume the front of the gap; the remainder stays in place
			// so the gap can host further activities.
			gaps[g].start += activity.DurationMin
			gaps[g].duration = gaps[g].end - gaps[g].start
			result.Placed++
			placed = true
			break
		}

		if !placed {
			if err := s.emergencyPlacement(activity, gaps, &result); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

const minutesPerDay = 24 * 60

// placeInGap moves the activity to the given start, stamps the adjustment
// bookkeeping, and persists it. A forced placement can run past the end of
// the day; the end is clamped to 23:59 so the stored clock stays parseable
// and later passes still see the activity.
func (s *Scheduler) placeInGap(activity *models.Activity, start int) error {
	end := start + activity.DurationMin
	if end > minutesPerDay-1 {
		end = minutesPerDay - 1
	}
	activity.StartTime = utils.FormatClock(start)
	activity.EndTime = utils.FormatClock(end)
	activity.AdjustmentCount++
	now := time.Now().UTC().Format(time.RFC3339)
	activity.LastAdjusted = &now

	if err := s.store.UpdateActivity(*activity); err != nil {
		return fmt.Errorf("failed to persist placement of %q: %w", activity.Title, err)
	}
	return nil
}

// emergencyPlacement handles an activity no gap can hold: shrink it to its
// minimum duration and rescan once, and failing that force it into the last
// gap (or the fallback evening window when the day has no gaps at all).
// Forced placements may overlap; that is deliberate degraded-mode behavior,
// never an error.
func (s *Scheduler) emergencyPlacement(activity *models.Activity, gaps []timeGap, result *Result) error {
	if activity.DurationMin > activity.MinDurationMin {
		originalDuration := activity.DurationMin
		activity.DurationMin = activity.MinDurationMin

		for g := range gaps {
			if gaps[g].duration < activity.DurationMin {
				continue
			}
			logger.Warn("Shrunk activity to its minimum duration",
				"activity", activity.Title, "from", originalDuration, "to", activity.DurationMin)
			result.Shrunk++
			return s.placeInGap(activity, gaps[g].start)
		}
	}

	start, _ := utils.ParseClock(constants.FallbackStart)
	if len(gaps) > 0 {
		start = gaps[len(gaps)-1].start
	}

	logger.Warn("Emergency placement, activity may overlap",
		"activity", activity.Title, "start", utils.FormatClock(start))
	result.Emergency++
	return s.placeInGap(activity, start)
}

// restoreOriginalTimes resets drifted activities back to their original
// start, recomputing the end from the stored duration. Activities already at
// their original time are not rewritten, and restoration does not bump the
// adjustment bookkeeping.
func (s *Scheduler) restoreOriginalTimes(activities []models.Activity) (int, error) {
	restored := 0
	for _, activity := range activities {
		if activity.OriginalStart == "" || activity.StartTime == activity.OriginalStart {
			continue
		}

		end, err := utils.AddClock(activity.OriginalStart, activity.DurationMin)
		if err != nil {
			logger.Warn("Skipping restore of activity with invalid original start",
				"activity", activity.Title, "original_start", activity.OriginalStart)
			continue
		}

		activity.StartTime = activity.OriginalStart
		activity.EndTime = end
		if err := s.store.UpdateActivity(activity); err != nil {
			return restored, fmt.Errorf("failed to restore %q: %w", activity.Title, err)
		}
		restored++
	}
	return restored, nil
}
