package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clipsum/internal/domain"
)

// GetUserSettings returns stored settings or the defaults for users who never
// changed anything.
func (d *Database) GetUserSettings(ctx context.Context, userID int64) (domain.UserSettings, error) {
	query := "select min_length, max_length, style, language from user_settings where user_id = ?"

	settings := domain.UserSettings{UserID: userID}
	var style string

	err := d.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.MinLength,
		&settings.MaxLength,
		&style,
		&settings.Language,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultUserSettings(userID), nil
	}
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("query user settings: %w", err)
	}

	settings.Style = domain.Style(strings.TrimSpace(style))
	if !settings.Style.Valid() {
		d.log.WarnContext(ctx, "Stored style is unknown so default will be used",
			"userID", userID,
			"style", style)

		settings.Style = domain.StyleDefault
	}
	settings.Language = strings.TrimSpace(settings.Language)

	return settings, nil
}

func (d *Database) SaveUserSettings(ctx context.Context, settings domain.UserSettings) error {
	if !settings.Style.Valid() {
		return fmt.Errorf("invalid style %q", settings.Style)
	}
	if settings.MinLength < 0 || settings.MaxLength < settings.MinLength {
		return fmt.Errorf("invalid length band %d-%d", settings.MinLength, settings.MaxLength)
	}

	query := `insert into user_settings (user_id, min_length, max_length, style, language)
values (?, ?, ?, ?, ?)
on conflict (user_id) do update set
    min_length = excluded.min_length,
    max_length = excluded.max_length,
    style = excluded.style,
    language = excluded.language`

	_, err := d.db.ExecContext(ctx, query,
		settings.UserID,
		settings.MinLength,
		settings.MaxLength,
		string(settings.Style),
		strings.TrimSpace(settings.Language),
	)
	if err != nil {
		return fmt.Errorf("upsert user settings: %w", err)
	}

	return nil
}
