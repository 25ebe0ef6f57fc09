package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

type ActivityAddCmd struct {
	Title       string `arg:"" help:"Activity title."`
	Day         string `short:"D" help:"Day of week, or 'daily' for every day." default:"daily"`
	Start       string `short:"s" help:"Start time (HH:MM)." required:""`
	Duration    int    `short:"d" help:"Duration in minutes." required:""`
	Priority    int    `short:"p" help:"Priority (1-4, 1 is fixed)." default:"3"`
	Category    string `short:"c" help:"Category (academic|fitness|meal|personal|social|reflection|rest|morning_routine)." default:"personal"`
	MinDuration int    `short:"m" help:"Minimum duration the scheduler may shrink to." default:"15"`
	Description string `help:"Optional description."`
}

func (c *ActivityAddCmd) Validate() error {
	if c.Priority < 1 || c.Priority > 4 {
		return fmt.Errorf("priority must be between 1 and 4")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.MinDuration <= 0 || c.MinDuration > c.Duration {
		return fmt.Errorf("minimum duration must be positive and at most the duration")
	}
	return nil
}

func (c *ActivityAddCmd) Run(ctx *Context) error {
	day, err := utils.NormalizeDay(c.Day)
	if err != nil {
		return err
	}

	end, err := utils.AddClock(c.Start, c.Duration)
	if err != nil {
		return err
	}

	activity := models.Activity{
		ID:             uuid.NewString(),
		UserID:         ctx.UserID,
		Title:          c.Title,
		Category:       models.Category(c.Category),
		Day:            day,
		StartTime:      c.Start,
		EndTime:        end,
		DurationMin:    c.Duration,
		PriorityLevel:  c.Priority,
		Flexible:       c.Priority > 1,
		ShiftMarginMin: 30,
		MinDurationMin: c.MinDuration,
		OriginalStart:  c.Start,
		Description:    c.Description,
		Active:         true,
	}

	if err := ctx.Store.AddActivity(activity); err != nil {
		return err
	}

	fmt.Printf("Added activity: %s on %s at %s (ID: %s)\n", c.Title, day, c.Start, activity.ID)
	return nil
}

type ActivityListCmd struct {
	Day string `arg:"" optional:"" help:"Day to list ('today', weekday, or empty for all)."`
}

func (c *ActivityListCmd) Run(ctx *Context) error {
	var activities []models.Activity
	var err error

	if c.Day == "" {
		activities, err = ctx.Store.GetAllActivities(ctx.UserID)
	} else {
		var day string
		day, err = resolveDay(c.Day)
		if err != nil {
			return err
		}
		activities, err = ctx.Store.GetActivitiesForDay(ctx.UserID, day)
	}
	if err != nil {
		return err
	}

	if len(activities) == 0 {
		fmt.Println("No activities found.")
		return nil
	}

	for _, a := range activities {
		fmt.Println(formatActivityRow(a))
	}
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity ID to delete."`
}

func (c *ActivityDeleteCmd) Run(ctx *Context) error {
	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted activity: %s (restore with 'planner activity restore %s')\n", activity.Title, c.ID)
	return nil
}

type ActivityRestoreCmd struct {
	ID string `arg:"" help:"Activity ID to restore."`
}

func (c *ActivityRestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.RestoreActivity(c.ID); err != nil {
		return err
	}

	activity, err := ctx.Store.GetActivity(c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Restored activity: %s\n", activity.Title)
	return nil
}
