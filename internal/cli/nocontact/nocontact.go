package nocontact

import (
	"fmt"

	"github.com/mendapp/mend/internal/cli"
	"github.com/mendapp/mend/internal/models"
)

type StartCmd struct {
	Contact string `arg:"" help:"Name of the person to go no-contact with."`
	Days    int    `short:"d" help:"Goal length in days." default:"30"`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	p, err := ctx.NoContact().StartPeriod(ctx.UserID, c.Contact, c.Days)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ No-contact period started for %q, goal %d days\n", p.ContactName, p.TargetDays)
	fmt.Printf("  ID: %s\n", p.ID)
	return nil
}

type EndCmd struct {
	ID string `arg:"" help:"Period ID."`
}

func (c *EndCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.NoContact().EndPeriod(ctx.UserID, c.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Println("✓ No-contact period ended")
	return nil
}

type ListCmd struct {
	All bool `short:"a" help:"Include ended periods."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	ps, err := ctx.NoContact().List(ctx.UserID, c.All)
	if err != nil {
		return err
	}
	if len(ps) == 0 {
		fmt.Println("No no-contact periods. Start one with 'mend nocontact start'.")
		return nil
	}

	for _, p := range ps {
		fmt.Println(formatPeriod(p))
	}
	return nil
}

type BreachCmd struct {
	ID    string `arg:"" help:"Period ID."`
	Type  string `short:"t" help:"How contact happened (call|text|social_media|in_person|other)." required:""`
	Notes string `short:"n" help:"What happened."`
}

func (c *BreachCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	b, err := ctx.NoContact().RecordBreach(ctx.UserID, c.ID, c.Type, c.Notes)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Breach recorded (%s). Your streak is still yours to keep going.\n", b.BreachType)
	fmt.Printf("  Breach ID: %s\n", b.ID)
	return nil
}

type BreachesCmd struct {
	ID string `arg:"" help:"Period ID."`
}

func (c *BreachesCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	bs, err := ctx.NoContact().Breaches(ctx.UserID, c.ID)
	if err != nil {
		return err
	}
	if len(bs) == 0 {
		fmt.Println("No breaches recorded. Keep going.")
		return nil
	}

	for _, b := range bs {
		fmt.Printf("%s  %s", b.BreachDate.Format("2006-01-02 15:04"), b.BreachType)
		if b.Notes != "" {
			fmt.Printf("  (%s)", b.Notes)
		}
		fmt.Printf("\n  ID: %s\n", b.ID)
	}
	return nil
}

type DeleteBreachCmd struct {
	ID string `arg:"" help:"Breach ID."`
}

func (c *DeleteBreachCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.NoContact().DeleteBreach(ctx.UserID, c.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Println("✓ Breach deleted")
	return nil
}

func formatPeriod(p models.NoContactPeriod) string {
	status := "active"
	if !p.IsActive {
		status = "ended"
	}
	line := fmt.Sprintf("%s  day %d of %d  (%s)", p.ContactName, p.DaysSinceStart, p.TargetDays, status)
	if p.IsGoalReached {
		line += "  🎉 goal reached"
	}
	return line + fmt.Sprintf("\n  ID: %s", p.ID)
}
