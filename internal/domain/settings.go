package domain

// UserSettings are the per-user defaults a front-end turns into a RequestConfig.
type UserSettings struct {
	UserID    int64
	MinLength int64
	MaxLength int64
	Style     Style
	Language  string
}

func DefaultUserSettings(userID int64) UserSettings {
	return UserSettings{
		UserID:    userID,
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		Style:     StyleDefault,
	}
}

func (s UserSettings) RequestConfig() RequestConfig {
	return RequestConfig{
		MinLength: int(s.MinLength),
		MaxLength: int(s.MaxLength),
		Style:     s.Style,
		Language:  s.Language,
	}.Normalize()
}
