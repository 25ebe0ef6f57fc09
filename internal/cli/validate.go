package cli

import (
	"errors"
	"fmt"

	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
	"github.com/NewEra-cyber/studentplanner/internal/validation"
)

type ValidateCmd struct {
	Day string `arg:"" help:"Day to validate ('today' or a weekday)." default:"today"`
}

func (c *ValidateCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Day)
	if err != nil {
		return err
	}

	commitments, err := ctx.Store.GetCommitmentsForDay(ctx.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to load timetable: %w", err)
	}
	activities, err := ctx.Store.GetActivitiesForDay(ctx.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}

	profile, err := ctx.Store.GetProfile(ctx.UserID)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		profile = models.Profile{UserID: ctx.UserID}
	}
	wake, sleep := validation.DefaultWindow(profile)

	fmt.Printf("Validating %s...\n\n", day)

	validator := validation.New()
	result := validator.ValidateDay(day, commitments, activities, wake, sleep)

	fmt.Println(result.FormatReport())

	// Conflicts are informational; the command itself succeeded.
	return nil
}
