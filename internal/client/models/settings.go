package models

// Language, Theme and Font are the enumerated display preferences.
type (
	Language string
	Theme    string
	Font     string
)

const (
	LanguageEnglish Language = "english"
	LanguageRussian Language = "russian"
	LanguageUzbek   Language = "uzbek"

	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	FontInter      Font = "inter"
	FontRoboto     Font = "roboto"
	FontMontserrat Font = "montserrat"
)

// SettingField names one field of Settings.
type SettingField string

const (
	FieldLanguage SettingField = "language"
	FieldTheme    SettingField = "theme"
	FieldFont     SettingField = "font"
)

// Settings is the persisted display preference object.
type Settings struct {
	Language Language `json:"language" validate:"oneof=english russian uzbek"`
	Theme    Theme    `json:"theme" validate:"oneof=light dark"`
	Font     Font     `json:"font" validate:"oneof=inter roboto montserrat"`
}

// DefaultSettings is english / light / inter.
func DefaultSettings() Settings {
	return Settings{
		Language: LanguageEnglish,
		Theme:    ThemeLight,
		Font:     FontInter,
	}
}

// CSSFamily maps a font to the CSS font-family value applied on change.
// Anything unrecognised falls back to Montserrat.
func (f Font) CSSFamily() string {
	switch f {
	case FontInter:
		return "Inter, sans-serif"
	case FontRoboto:
		return "Roboto, sans-serif"
	default:
		return "Montserrat, sans-serif"
	}
}
