package cli

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

type TimetableAddCmd struct {
	UnitCode string `arg:"" help:"Unit code (e.g. SCS2101)."`
	Day      string `short:"D" help:"Day of week." required:""`
	Start    string `short:"s" help:"Start time (HH:MM)." required:""`
	End      string `short:"e" help:"End time (HH:MM)." required:""`
	UnitName string `short:"n" help:"Unit name."`
	Venue    string `short:"v" help:"Venue."`
	Type     string `short:"t" help:"Entry type (lecture|lab|meeting|other)." default:"lecture"`
}

func (c *TimetableAddCmd) Validate() error {
	duration, err := utils.DiffMinutes(c.Start, c.End)
	if err != nil {
		return err
	}
	if duration <= 0 {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

func (c *TimetableAddCmd) Run(ctx *Context) error {
	day, err := utils.NormalizeDay(c.Day)
	if err != nil {
		return err
	}
	if day == constants.DayDaily {
		return fmt.Errorf("timetable entries need a concrete weekday")
	}

	commitment := models.Commitment{
		ID:        uuid.NewString(),
		UserID:    ctx.UserID,
		Day:       day,
		StartTime: c.Start,
		EndTime:   c.End,
		UnitCode:  c.UnitCode,
		UnitName:  c.UnitName,
		Venue:     c.Venue,
		Type:      models.CommitmentType(c.Type),
		Active:    true,
	}

	if err := ctx.Store.AddCommitment(commitment); err != nil {
		return err
	}

	fmt.Printf("Added timetable entry: %s on %s %s–%s (ID: %s)\n", c.UnitCode, day, c.Start, c.End, commitment.ID)
	adjustAfterChange(ctx, day)
	return nil
}

type TimetableEditCmd struct {
	ID       string  `arg:"" help:"Timetable entry ID to edit."`
	Day      *string `short:"D" help:"New day of week."`
	Start    *string `short:"s" help:"New start time (HH:MM)."`
	End      *string `short:"e" help:"New end time (HH:MM)."`
	UnitCode *string `help:"New unit code."`
	UnitName *string `short:"n" help:"New unit name."`
	Venue    *string `short:"v" help:"New venue."`
	Type     *string `short:"t" help:"New entry type (lecture|lab|meeting|other)."`
	Active   *bool   `help:"Set active status."`
}

func (c *TimetableEditCmd) Run(ctx *Context) error {
	commitment, err := ctx.Store.GetCommitment(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find timetable entry: %w", err)
	}
	previousDay := commitment.Day

	if c.Day != nil {
		day, err := utils.NormalizeDay(*c.Day)
		if err != nil {
			return err
		}
		if day == constants.DayDaily {
			return fmt.Errorf("timetable entries need a concrete weekday")
		}
		commitment.Day = day
	}
	if c.Start != nil {
		if _, err := utils.ParseClock(*c.Start); err != nil {
			return err
		}
		commitment.StartTime = *c.Start
	}
	if c.End != nil {
		if _, err := utils.ParseClock(*c.End); err != nil {
			return err
		}
		commitment.EndTime = *c.End
	}
	if duration, err := utils.DiffMinutes(commitment.StartTime, commitment.EndTime); err != nil {
		return err
	} else if duration <= 0 {
		return fmt.Errorf("end time must be after start time")
	}
	if c.UnitCode != nil {
		commitment.UnitCode = *c.UnitCode
	}
	if c.UnitName != nil {
		commitment.UnitName = *c.UnitName
	}
	if c.Venue != nil {
		commitment.Venue = *c.Venue
	}
	if c.Type != nil {
		commitment.Type = models.CommitmentType(*c.Type)
	}
	if c.Active != nil {
		commitment.Active = *c.Active
	}

	if err := ctx.Store.UpdateCommitment(commitment); err != nil {
		return err
	}

	fmt.Printf("Updated timetable entry: %s on %s %s–%s\n",
		commitment.UnitCode, commitment.Day, commitment.StartTime, commitment.EndTime)

	// Both days need re-planning when the entry moved to another weekday
	adjustAfterChange(ctx, commitment.Day)
	if previousDay != commitment.Day {
		adjustAfterChange(ctx, previousDay)
	}
	return nil
}

type TimetableListCmd struct {
	Day string `arg:"" optional:"" help:"Day to list ('today', weekday, or empty for all)."`
}

func (c *TimetableListCmd) Run(ctx *Context) error {
	var commitments []models.Commitment
	var err error

	if c.Day == "" {
		commitments, err = ctx.Store.GetAllCommitments(ctx.UserID)
	} else {
		var day string
		day, err = resolveDay(c.Day)
		if err != nil {
			return err
		}
		commitments, err = ctx.Store.GetCommitmentsForDay(ctx.UserID, day)
	}
	if err != nil {
		return err
	}

	if len(commitments) == 0 {
		fmt.Println("No timetable entries found.")
		return nil
	}

	// Stores order days alphabetically; present them in week order instead
	sort.SliceStable(commitments, func(i, j int) bool {
		return weekOrder(commitments[i].Day) < weekOrder(commitments[j].Day)
	})

	currentDay := ""
	for _, commitment := range commitments {
		if c.Day == "" && commitment.Day != currentDay {
			currentDay = commitment.Day
			fmt.Printf("\n%s:\n", currentDay)
		}
		fmt.Println(formatCommitmentRow(commitment))
	}
	return nil
}

type TimetableDeleteCmd struct {
	ID string `arg:"" help:"Timetable entry ID to delete."`
}

func (c *TimetableDeleteCmd) Run(ctx *Context) error {
	commitment, err := ctx.Store.GetCommitment(c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteCommitment(c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted timetable entry: %s on %s\n", commitment.UnitCode, commitment.Day)
	adjustAfterChange(ctx, commitment.Day)
	return nil
}

func weekOrder(day string) int {
	for i, d := range constants.DaysOfWeek {
		if d == day {
			return i
		}
	}
	return len(constants.DaysOfWeek)
}
