package book

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// birthdayLayout is the ISO-8601 date format the settings table stores.
const birthdayLayout = "2006-01-02"

// LoadProfile reads the optional user settings that feed the lifetime
// projection. Unset settings yield zero values; malformed values are reported
// so the data-entry layer can surface them.
func (s *Store) LoadProfile(ctx context.Context) (Profile, error) {
	var profile Profile

	if raw, err := s.Setting(ctx, SettingBirthday); err == nil {
		parsed, parseErr := time.Parse(birthdayLayout, strings.TrimSpace(raw))
		if parseErr != nil {
			return Profile{}, fmt.Errorf("parse birthday setting %q: %w", raw, parseErr)
		}
		profile.Birthday = &parsed
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	if raw, err := s.Setting(ctx, SettingLifeExpectancy); err == nil {
		parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if parseErr != nil {
			return Profile{}, fmt.Errorf("parse life expectancy setting %q: %w", raw, parseErr)
		}
		profile.LifeExpectancy = parsed
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	return profile, nil
}

// SaveBirthday stores the user's birth date.
func (s *Store) SaveBirthday(ctx context.Context, birthday time.Time) error {
	return s.SetSetting(ctx, SettingBirthday, birthday.Format(birthdayLayout))
}

// SaveLifeExpectancy stores the user's life expectancy in years.
func (s *Store) SaveLifeExpectancy(ctx context.Context, years float64) error {
	if years <= 0 {
		return fmt.Errorf("life expectancy must be positive, got %v", years)
	}
	return s.SetSetting(ctx, SettingLifeExpectancy, strconv.FormatFloat(years, 'f', -1, 64))
}
