package validation

import (
	"strings"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/constants"
)

// UserRitualInput holds the caller-supplied fields for creating or updating
// a personal ritual.
type UserRitualInput struct {
	Title           string
	Description     string
	Category        string
	TargetFrequency string
}

// ValidateUserRitual checks mandatory fields and normalizes the target
// frequency, defaulting it to daily when omitted.
func ValidateUserRitual(in *UserRitualInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return apperr.New(apperr.Validation, "title is required")
	}
	if in.Category == "" {
		return apperr.New(apperr.Validation, "category is required")
	}

	freq, err := NormalizeFrequency(in.TargetFrequency)
	if err != nil {
		return err
	}
	in.TargetFrequency = string(freq)
	return nil
}

// NormalizeFrequency maps a caller value onto the accepted frequencies. An
// empty value defaults to daily.
func NormalizeFrequency(raw string) (constants.TargetFrequency, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return constants.FrequencyDaily, nil
	}
	for _, f := range constants.TargetFrequencies {
		if raw == string(f) {
			return f, nil
		}
	}
	return "", apperr.Newf(apperr.Validation, "invalid target frequency %q (expected daily, weekly, or custom)", raw)
}

// ValidateTargetDays rejects no-contact goals shorter than one day.
func ValidateTargetDays(days int) error {
	if days < 1 {
		return apperr.Newf(apperr.Validation, "target days must be at least 1, got %d", days)
	}
	return nil
}

// ValidateBreachType checks the 5-way breach vocabulary.
func ValidateBreachType(raw string) (constants.BreachType, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, b := range constants.BreachTypes {
		if raw == string(b) {
			return b, nil
		}
	}
	return "", apperr.Newf(apperr.Validation, "invalid breach type %q (expected call, text, social_media, in_person, or other)", raw)
}

// MoodValue maps a named mood level to its stored 1-5 integer. An empty name
// means no mood was reported and maps to 0.
func MoodValue(name string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, nil
	}
	if v, ok := constants.MoodLevels[name]; ok {
		return v, nil
	}
	return 0, apperr.Newf(apperr.Validation, "invalid mood %q (expected terrible, bad, okay, good, or amazing)", name)
}

// ValidateContactName rejects empty no-contact names.
func ValidateContactName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.New(apperr.Validation, "contact name is required")
	}
	return name, nil
}
