package models

import "strconv"

// Setting is one persisted user preference.
type Setting struct {
	Key   string `gorm:"primaryKey;size:100" json:"key"`
	Value string `gorm:"not null" json:"value"`
}

// Known setting keys.
const (
	SettingExportFolder   = "export_folder"
	SettingAggregateSpecs = "aggregate_specs"
	SettingShowBC         = "show_bc_mkl"
	SettingLanguage       = "language"
	SettingMeridianNext   = "meridian_next_number"
)

// DefaultSettings are inserted on schema creation when absent.
var DefaultSettings = map[string]string{
	SettingExportFolder:   "exports",
	SettingAggregateSpecs: "true",
	SettingShowBC:         "true",
	SettingLanguage:       "ru",
	SettingMeridianNext:   "1",
}

// Settings is the typed view over the settings table.
type Settings struct {
	ExportFolder   string
	AggregateSpecs bool
	ShowBC         bool
	Language       string
}

// SettingsFromMap builds Settings, falling back to DefaultSettings for
// missing or unparsable values.
func SettingsFromMap(m map[string]string) Settings {
	get := func(key string) string {
		if v, ok := m[key]; ok && v != "" {
			return v
		}
		return DefaultSettings[key]
	}
	return Settings{
		ExportFolder:   get(SettingExportFolder),
		AggregateSpecs: parseBool(get(SettingAggregateSpecs), true),
		ShowBC:         parseBool(get(SettingShowBC), true),
		Language:       get(SettingLanguage),
	}
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
