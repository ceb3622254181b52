package validation

import (
	"testing"

	"github.com/mendapp/mend/internal/apperr"
	"github.com/mendapp/mend/internal/constants"
)

func TestValidateUserRitual(t *testing.T) {
	tests := []struct {
		name    string
		in      UserRitualInput
		wantErr bool
	}{
		{"valid", UserRitualInput{Title: "Journal", Category: "reflection", TargetFrequency: "daily"}, false},
		{"frequency defaults", UserRitualInput{Title: "Journal", Category: "reflection"}, false},
		{"missing title", UserRitualInput{Category: "reflection"}, true},
		{"whitespace title", UserRitualInput{Title: "   ", Category: "reflection"}, true},
		{"missing category", UserRitualInput{Title: "Journal"}, true},
		{"bad frequency", UserRitualInput{Title: "Journal", Category: "reflection", TargetFrequency: "hourly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserRitual(&tt.in)
			if tt.wantErr {
				if !apperr.IsKind(err, apperr.Validation) {
					t.Errorf("expected Validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.in.TargetFrequency == "" {
				t.Error("frequency should be normalized, not empty")
			}
		})
	}
}

func TestNormalizeFrequency(t *testing.T) {
	if f, err := NormalizeFrequency(""); err != nil || f != constants.FrequencyDaily {
		t.Errorf("empty frequency = (%q, %v), want daily", f, err)
	}
	if f, err := NormalizeFrequency(" Weekly "); err != nil || f != constants.FrequencyWeekly {
		t.Errorf("weekly = (%q, %v)", f, err)
	}
	if _, err := NormalizeFrequency("fortnightly"); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error, got %v", err)
	}
}

func TestValidateTargetDays(t *testing.T) {
	if err := ValidateTargetDays(1); err != nil {
		t.Errorf("1 day should be valid: %v", err)
	}
	for _, days := range []int{0, -5} {
		if err := ValidateTargetDays(days); !apperr.IsKind(err, apperr.Validation) {
			t.Errorf("ValidateTargetDays(%d) = %v, want Validation error", days, err)
		}
	}
}

func TestValidateBreachType(t *testing.T) {
	for _, raw := range []string{"call", "text", "social_media", "in_person", "other", " Text "} {
		if _, err := ValidateBreachType(raw); err != nil {
			t.Errorf("ValidateBreachType(%q) = %v, want ok", raw, err)
		}
	}
	if _, err := ValidateBreachType("carrier_pigeon"); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error, got %v", err)
	}
}

func TestMoodValue(t *testing.T) {
	want := map[string]int{"terrible": 1, "bad": 2, "okay": 3, "good": 4, "amazing": 5}
	for name, v := range want {
		got, err := MoodValue(name)
		if err != nil || got != v {
			t.Errorf("MoodValue(%q) = (%d, %v), want %d", name, got, err, v)
		}
	}

	if got, err := MoodValue(""); err != nil || got != 0 {
		t.Errorf("empty mood = (%d, %v), want 0", got, err)
	}
	if _, err := MoodValue("euphoric"); !apperr.IsKind(err, apperr.Validation) {
		t.Errorf("expected Validation error, got %v", err)
	}
}
