package daily

import (
	"fmt"

	"github.com/mendapp/mend/internal/cli"
	"github.com/mendapp/mend/internal/constants"
	"github.com/mendapp/mend/internal/validation"
)

// TodayCmd shows (and assigns, when needed) the daily prescription.
type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	eng := ctx.Prescriptions()
	p, err := eng.GetOrCreateToday(ctx.UserID)
	if err != nil {
		return err
	}
	def, err := eng.Definition(p)
	if err != nil {
		return err
	}

	fmt.Printf("Today's ritual (%s):\n\n", p.PrescribedDate)
	fmt.Print(cli.FormatPrescription(p, def))
	return nil
}

// ShuffleCmd swaps today's ritual for a different one.
type ShuffleCmd struct{}

func (c *ShuffleCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	eng := ctx.Prescriptions()
	res, err := eng.Shuffle(ctx.UserID)
	if err != nil {
		return err
	}
	def, err := eng.Definition(res.DailyPrescription)
	if err != nil {
		return err
	}

	fmt.Printf("Shuffled. New ritual (%d shuffle(s) left):\n\n", res.ShufflesRemaining)
	fmt.Print(cli.FormatPrescription(res.DailyPrescription, def))
	return nil
}

// CompleteCmd marks today's ritual done, with an optional mood and notes.
type CompleteCmd struct {
	Mood  string `short:"m" help:"How you feel after (terrible|bad|okay|good|amazing)."`
	Notes string `short:"n" help:"Free-form reflection notes."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	mood, err := validation.MoodValue(c.Mood)
	if err != nil {
		return err
	}

	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	p, err := ctx.Prescriptions().Complete(ctx.UserID, mood, c.Notes)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Ritual completed for %s", p.PrescribedDate)
	if c.Mood != "" {
		fmt.Printf(", feeling %s", c.Mood)
	}
	fmt.Println()
	return nil
}

// UndoCmd reverts today's completion.
type UndoCmd struct{}

func (c *UndoCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	p, err := ctx.Prescriptions().Undo(ctx.UserID)
	if err != nil {
		return err
	}

	fmt.Printf("Completion undone for %s. Shuffles left: %d\n", p.PrescribedDate, constants.MaxShuffles-p.ShufflesUsed)
	return nil
}
