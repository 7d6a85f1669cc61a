package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/zeipilote/internal/locale"
	"github.com/mmynk/zeipilote/internal/models"
)

// ProfileUpdate carries the business info fields to change. Nil fields are left as they are.
type ProfileUpdate struct {
	Name       *string `json:"name,omitempty"`
	Profession *string `json:"profession,omitempty"`
}

// SettingsUpdate carries the display settings to change. Nil fields are left as they are.
type SettingsUpdate struct {
	Currency       *string `json:"currency,omitempty"`
	CurrencyFormat *string `json:"currencyFormat,omitempty"`
}

// CreateProfile records the business owner during onboarding. Both fields are required.
func (d *Dashboard) CreateProfile(ctx context.Context, name, profession string) (models.BusinessInfo, error) {
	name, profession = strings.TrimSpace(name), strings.TrimSpace(profession)
	if name == "" || profession == "" {
		return models.BusinessInfo{}, fmt.Errorf("%w: name and profession are required", models.ErrInvalid)
	}
	return d.UpdateProfile(ctx, ProfileUpdate{Name: &name, Profession: &profession})
}

// UpdateProfession replaces the profession and stamps the profile.
func (d *Dashboard) UpdateProfession(ctx context.Context, profession string) error {
	_, err := d.UpdateProfile(ctx, ProfileUpdate{Profession: &profession})
	return err
}

// UpdateProfile merges upd into the business info and stamps LastUpdated.
func (d *Dashboard) UpdateProfile(ctx context.Context, upd ProfileUpdate) (models.BusinessInfo, error) {
	var info models.BusinessInfo
	err := d.mutate(ctx, "update_profile", func(data *models.AppData) error {
		if upd.Name != nil {
			data.BusinessInfo.Name = *upd.Name
		}
		if upd.Profession != nil {
			data.BusinessInfo.Profession = *upd.Profession
		}
		data.BusinessInfo.LastUpdated = d.stamp()
		info = data.BusinessInfo
		return nil
	})
	if err != nil {
		return models.BusinessInfo{}, err
	}
	slog.Info("Profile updated", "name", info.Name, "profession", info.Profession)
	return info, nil
}

// UpdateSettings merges upd into the settings after checking the currency code and locale tag.
// Empty values reset a field to its default.
func (d *Dashboard) UpdateSettings(ctx context.Context, upd SettingsUpdate) (models.Settings, error) {
	var errs []error
	if upd.Currency != nil && *upd.Currency != "" {
		if err := locale.ValidateCurrency(*upd.Currency); err != nil {
			errs = append(errs, err)
		}
	}
	if upd.CurrencyFormat != nil && *upd.CurrencyFormat != "" {
		if err := locale.ValidateLocale(*upd.CurrencyFormat); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	var settings models.Settings
	err := d.mutate(ctx, "update_settings", func(data *models.AppData) error {
		if data.Settings == nil {
			data.Settings = &models.Settings{}
		}
		if upd.Currency != nil {
			data.Settings.Currency = strings.ToUpper(*upd.Currency)
		}
		if upd.CurrencyFormat != nil {
			data.Settings.CurrencyFormat = *upd.CurrencyFormat
		}
		data.BusinessInfo.LastUpdated = d.stamp()
		settings = *data.Settings
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}
	slog.Info("Settings updated", "currency", settings.Currency, "currency_format", settings.CurrencyFormat)
	return settings, nil
}

// Formatter returns the currency and date formatter for the stored settings.
func (d *Dashboard) Formatter(ctx context.Context) locale.Formatter {
	data := d.Snapshot(ctx)
	return locale.New(data.Settings)
}
