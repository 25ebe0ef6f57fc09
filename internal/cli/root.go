package cli

import (
	"fmt"

	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/scheduler"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	UserID    string
}

// adjustAfterChange re-plans the affected day after a timetable mutation and
// reports what the scheduler did. Adjustment failures are surfaced to the
// user but never roll back the mutation itself.
func adjustAfterChange(ctx *Context, day string) {
	result, err := ctx.Scheduler.AdjustDay(ctx.UserID, day)
	if err != nil {
		fmt.Printf("Warning: failed to adjust %s: %v\n", day, err)
		return
	}
	printAdjustResult(day, result)
}

func printAdjustResult(day string, result scheduler.Result) {
	if result.State == scheduler.StateUnconstrained {
		fmt.Printf("%s is unconstrained; restored %d activities to their original times.\n", day, result.Restored)
		return
	}
	fmt.Printf("Adjusted %s: %d placed", day, result.Placed)
	if result.Shrunk > 0 {
		fmt.Printf(", %d shrunk", result.Shrunk)
	}
	if result.Emergency > 0 {
		fmt.Printf(", %d emergency", result.Emergency)
	}
	fmt.Println()
}

func formatActivityRow(a models.Activity) string {
	marker := " "
	if a.Fixed() {
		marker = "*"
	}
	row := fmt.Sprintf("%s–%s %s %-30s p%d %s", a.StartTime, a.EndTime, marker, a.Title, a.PriorityLevel, a.Category)
	if a.AdjustmentCount > 0 {
		row += fmt.Sprintf(" (adjusted %dx, originally %s)", a.AdjustmentCount, a.OriginalStart)
	}
	return row
}

func formatCommitmentRow(c models.Commitment) string {
	title := c.UnitCode
	if c.UnitName != "" {
		title = fmt.Sprintf("%s %s", c.UnitCode, c.UnitName)
	}
	row := fmt.Sprintf("%s–%s   %-30s [%s]", c.StartTime, c.EndTime, title, c.Type)
	if c.Venue != "" {
		row += " @ " + c.Venue
	}
	return row
}

// resolveDay normalizes a user-supplied day argument, accepting "today" as a
// shorthand for the current weekday.
func resolveDay(day string) (string, error) {
	if day == "today" {
		return utils.Today(), nil
	}
	return utils.NormalizeDay(day)
}
