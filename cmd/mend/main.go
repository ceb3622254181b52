package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mendapp/mend/internal/cli"
	"github.com/mendapp/mend/internal/cli/backups"
	"github.com/mendapp/mend/internal/cli/daily"
	"github.com/mendapp/mend/internal/cli/nocontact"
	"github.com/mendapp/mend/internal/cli/rituals"
	"github.com/mendapp/mend/internal/cli/shields"
	"github.com/mendapp/mend/internal/cli/system"
	"github.com/mendapp/mend/internal/clock"
	"github.com/mendapp/mend/internal/constants"
	"github.com/mendapp/mend/internal/events"
	"github.com/mendapp/mend/internal/keyring"
	"github.com/mendapp/mend/internal/logger"
	"github.com/mendapp/mend/internal/storage"
	"github.com/mendapp/mend/internal/storage/postgres"
	"github.com/mendapp/mend/internal/storage/sqlite"
)

var CLI struct {
	Version  kong.VersionFlag
	Debug    bool   `help:"Enable debug logging."`
	User     string `short:"u" help:"User ID to act as." env:"MEND_USER" default:"local"`
	Timezone string `help:"IANA timezone for day boundaries." env:"MEND_TIMEZONE" default:"Local"`
	Config   string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead." default:"~/.config/mend/mend.db"`

	Init    system.InitCmd    `cmd:"" help:"Initialize mend storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`

	Today    daily.TodayCmd    `cmd:"" help:"Show today's prescribed ritual." default:"1"`
	Shuffle  daily.ShuffleCmd  `cmd:"" help:"Swap today's ritual for a different one."`
	Complete daily.CompleteCmd `cmd:"" help:"Mark today's ritual completed."`
	Undo     daily.UndoCmd     `cmd:"" help:"Undo today's completion."`

	Ritual struct {
		Add    rituals.RitualAddCmd    `cmd:"" help:"Add a personal ritual."`
		Edit   rituals.RitualEditCmd   `cmd:"" help:"Edit a personal ritual."`
		List   rituals.RitualListCmd   `cmd:"" help:"List personal rituals."`
		Done   rituals.RitualDoneCmd   `cmd:"" help:"Record a completion."`
		Delete rituals.RitualDeleteCmd `cmd:"" help:"Delete a personal ritual (history is kept)."`
	} `cmd:"" help:"Manage personal rituals."`

	Nocontact struct {
		Start        nocontact.StartCmd        `cmd:"" help:"Start a no-contact period."`
		End          nocontact.EndCmd          `cmd:"" help:"End a no-contact period."`
		List         nocontact.ListCmd         `cmd:"" help:"List no-contact periods."`
		Breach       nocontact.BreachCmd       `cmd:"" help:"Record a contact lapse."`
		Breaches     nocontact.BreachesCmd     `cmd:"" help:"List recorded lapses."`
		DeleteBreach nocontact.DeleteBreachCmd `cmd:"" help:"Delete a mistakenly recorded lapse."`
	} `cmd:"" help:"Track no-contact periods."`

	Shield struct {
		Status shields.ShieldStatusCmd `cmd:"" help:"Show remaining streak shields."`
		Use    shields.ShieldUseCmd    `cmd:"" help:"Spend a streak shield."`
	} `cmd:"" help:"Manage streak shields."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	// A .env next to the binary or in the working directory can supply
	// MEND_USER, MEND_TIMEZONE, and MEND_DB_CONNECTION.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily ritual prescriptions and no-contact streak protection"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store, err := buildStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(store),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	clk, err := clock.NewSystem(CLI.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:  store,
		Clock:  clk,
		Rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		Events: events.LogRecorder{},
		UserID: CLI.User,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildStore picks the storage backend: an explicit postgres connection
// string wins, then MEND_DB_CONNECTION, then the OS keyring, and finally
// the sqlite file path.
func buildStore() (storage.Provider, error) {
	connStr := CLI.Config
	if !isPostgres(connStr) {
		if env := os.Getenv("MEND_DB_CONNECTION"); isPostgres(env) {
			connStr = env
		} else if fromKeyring, err := keyring.GetConnectionString(); err == nil && isPostgres(fromKeyring) {
			connStr = fromKeyring
		}
	}

	if isPostgres(connStr) {
		if connStr == CLI.Config || connStr == os.Getenv("MEND_DB_CONNECTION") {
			// Keyring values may carry embedded credentials, flag and env
			// values may not.
			if err := postgres.ValidateConnString(connStr); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; store them with 'mend keyring set' instead")
				}
				return nil, err
			}
		}
		return postgres.NewStore(connStr), nil
	}

	return sqlite.NewStore(expandHome(CLI.Config)), nil
}

func isPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

func configDir(store storage.Provider) string {
	path := store.GetConfigPath()
	if isPostgres(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
