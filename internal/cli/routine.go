package cli

import (
	"fmt"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/routine"
)

type RoutineInitCmd struct {
	Force bool `short:"f" help:"Seed even if the user already has activities."`
}

func (c *RoutineInitCmd) Run(ctx *Context) error {
	existing, err := ctx.Store.GetAllActivities(ctx.UserID)
	if err != nil {
		return fmt.Errorf("failed to check existing activities: %w", err)
	}
	if len(existing) > 0 && !c.Force {
		return fmt.Errorf("user %q already has %d activities; use --force to seed anyway", ctx.UserID, len(existing))
	}

	created, err := routine.Seed(ctx.Store, ctx.UserID)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d activities across %d days for %s.\n", created, len(constants.DaysOfWeek), ctx.UserID)
	fmt.Println("The schedule will auto-adjust as you add timetable entries.")
	return nil
}

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *Context) error {
	templates := routine.DefaultRoutine()

	fmt.Println("Default routine template:")
	for _, tpl := range templates {
		marker := " "
		if tpl.Priority == constants.PriorityFixed {
			marker = "*"
		}
		fmt.Printf("%s %s %-30s %3dm p%d %s\n", tpl.Start, marker, tpl.Title, tpl.DurationMin, tpl.Priority, tpl.Category)
	}
	fmt.Println("\n* = fixed, never repositioned")
	return nil
}
