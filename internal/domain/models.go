package domain

// Activity represents one logged carbon-emitting (or carbon-saving) action.
// Field names are the durable JSON contract; stored records from previous
// versions must keep deserializing.
type Activity struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // ISO-8601 date-time string
	TypeID   string  `json:"typeId"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`

	// Custom activity fields
	IsCustom            bool    `json:"isCustom,omitempty"`
	CustomName          string  `json:"customName,omitempty"`
	CustomUnit          string  `json:"customUnit,omitempty"`
	CustomCarbonPerUnit float64 `json:"customCarbonPerUnit,omitempty"`
}

// WellFormed reports whether the activity satisfies the submission invariant:
// either a predefined type reference or a fully-specified custom activity.
// The stores never call this; validation is the form layer's job.
func (a Activity) WellFormed(typeExists func(string) bool) bool {
	if a.IsCustom {
		return a.CustomName != "" && a.CustomUnit != "" && a.CustomCarbonPerUnit > 0
	}
	return typeExists(a.TypeID)
}

// ThemeMode selects between following the system preference and an explicit
// light or dark palette.
type ThemeMode string

const (
	ThemeSystem ThemeMode = "system"
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
)

// ColorScheme is the accent palette applied on top of the theme mode.
type ColorScheme string

const (
	SchemeBlue   ColorScheme = "blue"
	SchemeGreen  ColorScheme = "green"
	SchemePurple ColorScheme = "purple"
	SchemeAmber  ColorScheme = "amber"
)

// Settings enums.
type (
	UnitSystem   string
	DateFormat   string
	EmailDigest  string
	StorageLimit string
)

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

const (
	DateFormatUS  DateFormat = "MM/DD/YYYY"
	DateFormatEU  DateFormat = "DD/MM/YYYY"
	DateFormatISO DateFormat = "YYYY-MM-DD"
)

const (
	DigestDaily   EmailDigest = "daily"
	DigestWeekly  EmailDigest = "weekly"
	DigestMonthly EmailDigest = "monthly"
	DigestNever   EmailDigest = "never"
)

const (
	Storage30Days    StorageLimit = "30"
	Storage90Days    StorageLimit = "90"
	Storage180Days   StorageLimit = "180"
	Storage365Days   StorageLimit = "365"
	StorageUnlimited StorageLimit = "unlimited"
)

// Settings is the flat record of user preferences. Each field persists under
// its own "settings.*" key.
type Settings struct {
	DataCollection    bool
	AnonymizeData     bool
	StorageLimit      StorageLimit
	Units             UnitSystem
	DateFormat        DateFormat
	EmailDigest       EmailDigest
	PushNotifications bool
}

// DefaultSettings is the fixed tuple ResetToDefaults rewrites to.
func DefaultSettings() Settings {
	return Settings{
		DataCollection:    true,
		AnonymizeData:     true,
		StorageLimit:      Storage90Days,
		Units:             UnitsMetric,
		DateFormat:        DateFormatUS,
		EmailDigest:       DigestWeekly,
		PushNotifications: true,
	}
}
