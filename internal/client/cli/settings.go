package cli

import (
	"context"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
)

func (a *App) ShowSettings(_ context.Context) error {
	s := a.settings.Get()
	a.printf("language: %s\n", s.Language)
	a.printf("theme:    %s\n", s.Theme)
	a.printf("font:     %s (%s)\n", s.Font, a.appearance.FontFamily())
	return nil
}

func (a *App) SetSetting(ctx context.Context, field, value string) error {
	if err := a.settings.Update(ctx, models.SettingField(field), value); err != nil {
		return err
	}
	a.printf("%s set to %s\n", field, value)
	return nil
}

func (a *App) ResetSettings(ctx context.Context) error {
	a.settings.Reset(ctx)
	a.println("Settings reset to defaults")
	return nil
}
