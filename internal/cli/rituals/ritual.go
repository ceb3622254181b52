package rituals

import (
	"fmt"

	"github.com/mendapp/mend/internal/cli"
	"github.com/mendapp/mend/internal/validation"
)

type RitualAddCmd struct {
	Title       string `arg:"" help:"Ritual title."`
	Category    string `short:"c" help:"Category (e.g. mindfulness, physical, social)." required:""`
	Description string `short:"d" help:"What this ritual involves."`
	Frequency   string `short:"f" help:"Target frequency (daily|weekly|custom), defaults to daily."`
}

func (c *RitualAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	r, err := ctx.Rituals().Create(ctx.UserID, validation.UserRitualInput{
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		TargetFrequency: c.Frequency,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Added ritual %q (%s, %s)\n", r.Title, r.Category, r.TargetFrequency)
	fmt.Printf("  ID: %s\n", r.ID)
	return nil
}

type RitualEditCmd struct {
	ID          string `arg:"" help:"Ritual ID."`
	Title       string `help:"New title." required:""`
	Category    string `short:"c" help:"New category." required:""`
	Description string `short:"d" help:"New description."`
	Frequency   string `short:"f" help:"New target frequency (daily|weekly|custom)."`
}

func (c *RitualEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	r, err := ctx.Rituals().Update(ctx.UserID, c.ID, validation.UserRitualInput{
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		TargetFrequency: c.Frequency,
	})
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Updated ritual %q\n", r.Title)
	return nil
}

type RitualListCmd struct {
	All bool `short:"a" help:"Include deleted rituals."`
}

func (c *RitualListCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	eng := ctx.Rituals()
	rs, err := eng.List(ctx.UserID, c.All)
	if err != nil {
		return err
	}
	if len(rs) == 0 {
		fmt.Println("No rituals yet. Add one with 'mend ritual add'.")
		return nil
	}

	for _, r := range rs {
		marker := " "
		if done, err := eng.CompletedToday(ctx.UserID, r.ID); err == nil && done {
			marker = "✓"
		}
		status := ""
		if !r.IsActive {
			status = "  (deleted)"
		}
		fmt.Printf("%s %s  [%s, %s]%s\n", marker, r.Title, r.Category, r.TargetFrequency, status)
		fmt.Printf("   ID: %s\n", r.ID)
	}
	return nil
}

type RitualDoneCmd struct {
	ID    string `arg:"" help:"Ritual ID."`
	Mood  string `short:"m" help:"How you feel after (terrible|bad|okay|good|amazing)."`
	Notes string `short:"n" help:"Free-form notes."`
}

func (c *RitualDoneCmd) Run(ctx *cli.Context) error {
	mood, err := validation.MoodValue(c.Mood)
	if err != nil {
		return err
	}

	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if _, err := ctx.Rituals().RecordCompletion(ctx.UserID, c.ID, mood, c.Notes); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Println("✓ Completion recorded")
	return nil
}

type RitualDeleteCmd struct {
	ID string `arg:"" help:"Ritual ID."`
}

func (c *RitualDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Rituals().Delete(ctx.UserID, c.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Println("✓ Ritual deleted (completion history kept)")
	return nil
}
