package cli

type AdjustCmd struct {
	Day string `arg:"" help:"Day to adjust ('today' or a weekday)." default:"today"`
}

func (c *AdjustCmd) Run(ctx *Context) error {
	day, err := resolveDay(c.Day)
	if err != nil {
		return err
	}

	result, err := ctx.Scheduler.AdjustDay(ctx.UserID, day)
	if err != nil {
		return err
	}

	printAdjustResult(day, result)
	return nil
}
