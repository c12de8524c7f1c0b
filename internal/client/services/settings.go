package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tripcart/internal/client/models"
	"github.com/dmitrijs2005/tripcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/tripcart/internal/logging"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Appearance receives the visual side effects of settings changes.
type Appearance interface {
	SetDarkMode(dark bool)
	SetFontFamily(css string)
}

type noAppearance struct{}

func (noAppearance) SetDarkMode(bool)     {}
func (noAppearance) SetFontFamily(string) {}

// SettingsService holds the display settings of this process. Every change
// is persisted in full under metadata.KeySettings and pushed to Appearance.
type SettingsService struct {
	store      metadata.Repository
	appearance Appearance
	log        logging.Logger

	mu      sync.Mutex
	current models.Settings
}

// NewSettingsService loads the stored settings, falling back to defaults for
// a missing or unreadable object and for any field outside its enumeration,
// then applies both side effects once.
func NewSettingsService(ctx context.Context, store metadata.Repository, appearance Appearance, logger logging.Logger) *SettingsService {
	if appearance == nil {
		appearance = noAppearance{}
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}
	s := &SettingsService{
		store:      store,
		appearance: appearance,
		log:        logger.With("component", "settings"),
	}
	s.current = s.load(ctx)
	s.applyAll(s.current)
	return s
}

func (s *SettingsService) load(ctx context.Context) models.Settings {
	def := models.DefaultSettings()

	raw, err := s.store.Get(ctx, metadata.KeySettings)
	if err != nil {
		s.log.Warn(ctx, "read settings, using defaults", "error", err)
		return def
	}
	if len(raw) == 0 {
		return def
	}

	loaded := def
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.log.Warn(ctx, "stored settings unreadable, using defaults", "error", err)
		return def
	}

	var verrs validator.ValidationErrors
	if err := validate.Struct(loaded); errors.As(err, &verrs) {
		for _, fe := range verrs {
			s.log.Warn(ctx, "stored setting out of range, using default",
				"field", fe.Field(), "value", fmt.Sprint(fe.Value()))
			switch fe.StructField() {
			case "Language":
				loaded.Language = def.Language
			case "Theme":
				loaded.Theme = def.Theme
			case "Font":
				loaded.Font = def.Font
			}
		}
	}
	return loaded
}

// Get returns the current settings.
func (s *SettingsService) Get() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update sets one field. An unknown field or a value outside the field's
// enumeration fails with ErrInvalidSetting and changes nothing. Persistence
// failures are logged; the in-memory value and side effect still apply.
func (s *SettingsService) Update(ctx context.Context, field models.SettingField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	switch field {
	case models.FieldLanguage:
		next.Language = models.Language(value)
	case models.FieldTheme:
		next.Theme = models.Theme(value)
	case models.FieldFont:
		next.Font = models.Font(value)
	default:
		return fmt.Errorf("%w: unknown field %q", ErrInvalidSetting, field)
	}
	if err := validate.Struct(next); err != nil {
		return fmt.Errorf("%w: %s %q", ErrInvalidSetting, field, value)
	}

	s.current = next
	s.persist(ctx, next)

	switch field {
	case models.FieldTheme:
		s.appearance.SetDarkMode(next.Theme == models.ThemeDark)
	case models.FieldFont:
		s.appearance.SetFontFamily(next.Font.CSSFamily())
	}
	return nil
}

// Reset restores the defaults, persists them and re-applies both side
// effects.
func (s *SettingsService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.DefaultSettings()
	s.persist(ctx, s.current)
	s.applyAll(s.current)
}

func (s *SettingsService) persist(ctx context.Context, v models.Settings) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error(ctx, "encode settings", "error", err)
		return
	}
	if err := s.store.Set(ctx, metadata.KeySettings, data); err != nil {
		s.log.Error(ctx, "persist settings", "error", err)
	}
}

func (s *SettingsService) applyAll(v models.Settings) {
	s.appearance.SetDarkMode(v.Theme == models.ThemeDark)
	s.appearance.SetFontFamily(v.Font.CSSFamily())
}
