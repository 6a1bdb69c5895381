package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/lens-orders/internal/models"
	"github.com/diewo77/lens-orders/validation"
	"gorm.io/gorm"
)

// ErrUnknownSetting is returned by SetSetting for keys that cannot be set.
var ErrUnknownSetting = errors.New("unknown setting")

// GetSettings returns the stored preferences, with defaults for missing keys.
func (s *Store) GetSettings() (models.Settings, error) {
	var rows []models.Setting
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Find(&rows).Error
	})
	if err != nil {
		return models.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	m := make(map[string]string, len(rows))
	for _, r := range rows {
		m[r.Key] = r.Value
	}
	return models.SettingsFromMap(m), nil
}

// SetSetting stores one preference. Boolean settings accept the forms of
// strconv.ParseBool; language accepts ru and en.
func (s *Store) SetSetting(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	switch key {
	case models.SettingExportFolder:
		v := make(validation.Violations)
		validation.Required(key, value, v)
		if err := v.Err(); err != nil {
			return err
		}
	case models.SettingAggregateSpecs, models.SettingShowBC:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return validation.Violations{key: "invalid_bool"}.Err()
		}
		value = strconv.FormatBool(b)
	case models.SettingLanguage:
		value = strings.ToLower(value)
		if value != "ru" && value != "en" {
			return validation.Violations{key: "out_of_range"}.Err()
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	err := s.withConn(func(tx *gorm.DB) error {
		return tx.Save(&models.Setting{Key: key, Value: value}).Error
	})
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
