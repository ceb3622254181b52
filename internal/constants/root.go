package constants

// BreachType represents how a no-contact lapse happened
type BreachType string

// TargetFrequency represents how often a personal ritual is intended
type TargetFrequency string

// RitualCategory represents the catalog grouping of a ritual
type RitualCategory string

const (
	AppName            = "mend"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/mend/mend.db"
	Version            = "v0.3.0"

	// DateFormat is the standard calendar-day format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MaxShuffles is the number of times a daily prescription may be rerolled
	MaxShuffles = 2

	// ExclusionWindowDays is the sliding lookback used to avoid repeating a
	// recently prescribed ritual
	ExclusionWindowDays = 7

	// ShieldWindowDays is the sliding lookback for streak-shield consumption
	ShieldWindowDays = 7

	// DefaultShieldsPerWeek is the free-tier streak-shield allowance
	DefaultShieldsPerWeek = 1

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mend-"
	BackupFileSuffix = ".db"

	// Target frequency constants
	FrequencyDaily  TargetFrequency = "daily"
	FrequencyWeekly TargetFrequency = "weekly"
	FrequencyCustom TargetFrequency = "custom"

	// Breach type constants
	BreachCall        BreachType = "call"
	BreachText        BreachType = "text"
	BreachSocialMedia BreachType = "social_media"
	BreachInPerson    BreachType = "in_person"
	BreachOther       BreachType = "other"

	// Ritual category constants
	CategoryMindfulness RitualCategory = "mindfulness"
	CategoryPhysical    RitualCategory = "physical"
	CategorySocial      RitualCategory = "social"
	CategoryCreative    RitualCategory = "creative"
	CategoryReflection  RitualCategory = "reflection"
)

// TargetFrequencies lists every accepted personal-ritual frequency.
var TargetFrequencies = []TargetFrequency{FrequencyDaily, FrequencyWeekly, FrequencyCustom}

// BreachTypes lists every accepted breach type.
var BreachTypes = []BreachType{BreachCall, BreachText, BreachSocialMedia, BreachInPerson, BreachOther}

// MoodLevels maps the five named mood levels reported at completion time to
// the 1-5 integers stored with the record.
var MoodLevels = map[string]int{
	"terrible": 1,
	"bad":      2,
	"okay":     3,
	"good":     4,
	"amazing":  5,
}
