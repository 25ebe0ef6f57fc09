package cli

import (
	"fmt"
	"sort"

	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

type DayCmd struct {
	Day string `arg:"" help:"Day to show ('today' or a weekday)." default:"today"`
}

// dayEntry is one row of the merged chronological view.
type dayEntry struct {
	start int
	row   string
}

func (c *DayCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Day)
	if err != nil {
		return err
	}

	commitments, err := ctx.Store.GetCommitmentsForDay(ctx.UserID, day)
	if err != nil {
		return err
	}
	activities, err := ctx.Store.GetActivitiesForDay(ctx.UserID, day)
	if err != nil {
		return err
	}

	var entries []dayEntry
	for _, commitment := range commitments {
		start, err := utils.ParseClock(commitment.StartTime)
		if err != nil {
			continue
		}
		entries = append(entries, dayEntry{start: start, row: formatCommitmentRow(commitment)})
	}
	for _, activity := range activities {
		start, err := utils.ParseClock(activity.StartTime)
		if err != nil {
			continue
		}
		entries = append(entries, dayEntry{start: start, row: formatActivityRow(activity)})
	}

	fmt.Printf("Schedule for %s:\n\n", day)

	if len(entries) == 0 {
		fmt.Println("  Nothing scheduled")
		return nil
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].start < entries[j].start
	})

	for _, entry := range entries {
		fmt.Println(entry.row)
	}
	return nil
}
