package cli

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mendapp/mend/internal/backup"
	"github.com/mendapp/mend/internal/catalog"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/constants"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/logger"
	"github.com/mendapp/mend/internal/models"
	"github.com/mendapp/mend/internal/nocontact"
	"github.com/mendapp/mend/internal/prescription"
	"github.com/mendapp/mend/internal/rituals"
	"github.com/mendapp/mend/internal/shield"
	"github.com/mendapp/mend/internal/storage"
)

// Context carries the shared dependencies into every command. UserID comes
// from the global --user flag and stands in for the account layer.
type Context struct {
	Store   storage.Provider
	Clock   clock.Clock
	Rng     *rand.Rand
	Events  events.Recorder
	UserID  string
	Catalog *catalog.Catalog
}

// LoadStore opens the database and the ritual catalog. Commands that touch
// data call this first; init and doctor manage the store themselves.
func (c *Context) LoadStore() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	if c.Catalog == nil {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		c.Catalog = cat
	}
	return nil
}

func (c *Context) Prescriptions() *prescription.Engine {
	return prescription.New(c.Store, c.Catalog, c.Clock, c.Rng, c.Events)
}

func (c *Context) Rituals() *rituals.Engine {
	return rituals.New(c.Store, c.Clock, c.Events)
}

func (c *Context) NoContact() *nocontact.Tracker {
	return nocontact.New(c.Store, c.Clock, c.Events)
}

func (c *Context) Shields() *shield.Ledger {
	return shield.New(c.Store, c.Clock, c.Events)
}

// PerformAutomaticBackup snapshots the database without interrupting the
// user's workflow on failure.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// MoodName maps a stored mood integer back to its display name.
func MoodName(mood int) string {
	for name, v := range constants.MoodLevels {
		if v == mood {
			return name
		}
	}
	return ""
}

// FormatPrescription renders one prescription with its catalog definition.
func FormatPrescription(p models.DailyPrescription, def models.RitualDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  [%s, intensity %d]\n", def.Title, def.Category, def.Intensity)
	fmt.Fprintf(&b, "  %s\n", def.Instructions)
	if def.ExpectedOutcome != "" {
		fmt.Fprintf(&b, "  Expected outcome: %s\n", def.ExpectedOutcome)
	}
	if p.IsCompleted {
		fmt.Fprintf(&b, "  Completed at %s", p.CompletedAt.Format("15:04"))
		if name := MoodName(p.CompletionMood); name != "" {
			fmt.Fprintf(&b, ", feeling %s", name)
		}
		if p.CompletionNotes != "" {
			fmt.Fprintf(&b, "\n  Notes: %s", p.CompletionNotes)
		}
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "  Shuffles left: %d\n", constants.MaxShuffles-p.ShufflesUsed)
	}
	return b.String()
}
