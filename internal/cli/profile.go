package cli

import (
	"errors"
	"fmt"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	profile, err := ctx.Store.GetProfile(ctx.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			fmt.Printf("No profile for %s; using defaults.\n", ctx.UserID)
			profile = models.Profile{
				UserID:     ctx.UserID,
				WakeUpTime: constants.DefaultWakeUpTime,
				SleepTime:  constants.DefaultSleepTime,
			}
		} else {
			return err
		}
	}

	wake := profile.WakeUpTime
	if wake == "" {
		wake = constants.DefaultWakeUpTime
	}
	sleep := profile.SleepTime
	if sleep == "" {
		sleep = constants.DefaultSleepTime
	}

	fmt.Printf("Profile for %s:\n", ctx.UserID)
	fmt.Printf("  Wake-up time: %s\n", wake)
	fmt.Printf("  Sleep time:   %s\n", sleep)
	if profile.Timezone != "" {
		fmt.Printf("  Timezone:     %s\n", profile.Timezone)
	}
	return nil
}

type ProfileSetCmd struct {
	WakeUp   string `help:"Wake-up time (HH:MM)."`
	Sleep    string `help:"Sleep time (HH:MM)."`
	Timezone string `help:"IANA timezone name."`
}

func (c *ProfileSetCmd) Validate() error {
	if c.WakeUp != "" {
		if _, err := utils.ParseClock(c.WakeUp); err != nil {
			return err
		}
	}
	if c.Sleep != "" {
		if _, err := utils.ParseClock(c.Sleep); err != nil {
			return err
		}
	}
	return nil
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	profile, err := ctx.Store.GetProfile(ctx.UserID)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return err
		}
		profile = models.Profile{UserID: ctx.UserID}
	}

	updated := false
	if c.WakeUp != "" {
		profile.WakeUpTime = c.WakeUp
		updated = true
	}
	if c.Sleep != "" {
		profile.SleepTime = c.Sleep
		updated = true
	}
	if c.Timezone != "" {
		profile.Timezone = c.Timezone
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use --wake-up, --sleep, or --timezone.")
		return nil
	}

	if err := ctx.Store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Println("Profile updated successfully.")
	return nil
}
