package models

// SettingsID identifies the single settings record
const SettingsID = "settings"

// Settings is the app-wide settings record, stored as a one-element array
type Settings struct {
	LogoURL string `json:"logoUrl,omitempty"`
}

// GetID returns the fixed settings id
func (Settings) GetID() string {
	return SettingsID
}
