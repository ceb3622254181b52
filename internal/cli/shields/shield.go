package shields

import (
	"fmt"

	"github.com/mendapp/mend/internal/cli"
	"github.com/mendapp/mend/internal/shield"
)

type ShieldStatusCmd struct {
	Period string `arg:"" help:"No-contact period ID."`
	Quota  int    `help:"Shields allowed per sliding week." default:"1"`
}

func (c *ShieldStatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	policy := shield.Policy{MaxPerWeek: c.Quota}
	rem, err := ctx.Shields().Remaining(ctx.UserID, c.Period, policy)
	if err != nil {
		return err
	}

	fmt.Printf("Streak shields remaining this week: %d of %d\n", rem, policy.MaxPerWeek)
	return nil
}

type ShieldUseCmd struct {
	Period string `arg:"" help:"No-contact period ID."`
	Quota  int    `help:"Shields allowed per sliding week." default:"1"`
}

func (c *ShieldUseCmd) Run(ctx *cli.Context) error {
	if err := ctx.LoadStore(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	policy := shield.Policy{MaxPerWeek: c.Quota}
	u, err := ctx.Shields().Use(ctx.UserID, c.Period, policy)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("🛡  Shield used at %s. Your streak is protected.\n", u.UsedAt.Format("2006-01-02 15:04"))

	rem, err := ctx.Shields().Remaining(ctx.UserID, c.Period, policy)
	if err == nil {
		fmt.Printf("Shields remaining this week: %d\n", rem)
	}
	return nil
}
