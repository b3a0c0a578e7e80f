package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"appointer/internal/core/domain"
)

type bookingTypesFile struct {
	BookingTypes map[string]bookingTypeSpec `yaml:"booking_types"`
}

type bookingTypeSpec struct {
	Label             string            `yaml:"label"`
	Description       string            `yaml:"description"`
	Location          string            `yaml:"location"`
	Duration          int               `yaml:"duration"`
	Slots             int               `yaml:"slots"`
	LeadTime          int               `yaml:"lead_time"`
	FutureLimit       int               `yaml:"future_limit"`
	CollapseDays      bool              `yaml:"collapse_days"`
	ShowConflictLabel bool              `yaml:"show_conflict_label"`
	Hidden            bool              `yaml:"hidden"`
	Overrides         map[string]string `yaml:"overrides"`
}

// LoadBookingTypes читает YAML с типами бронирования и собирает из него
// политики. Любая ошибка здесь фатальна: сервис не должен подниматься
// с молча подставленными дефолтами
func LoadBookingTypes(path string) (map[string]*domain.BookingPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("booking types: %w", err)
	}

	var file bookingTypesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("booking types: %w", err)
	}

	if len(file.BookingTypes) == 0 {
		return nil, &domain.ConfigError{Field: "booking_types", Value: path, Msg: "no booking types defined"}
	}

	policies := make(map[string]*domain.BookingPolicy, len(file.BookingTypes))
	for id, spec := range file.BookingTypes {
		policy, err := buildPolicy(id, spec)
		if err != nil {
			return nil, err
		}
		policies[id] = policy
	}

	return policies, nil
}

func buildPolicy(id string, spec bookingTypeSpec) (*domain.BookingPolicy, error) {
	if spec.Duration <= 0 {
		return nil, &domain.ConfigError{Field: id + ".duration", Value: fmt.Sprint(spec.Duration), Msg: "must be positive"}
	}
	if spec.Slots <= 0 {
		return nil, &domain.ConfigError{Field: id + ".slots", Value: fmt.Sprint(spec.Slots), Msg: "must be positive"}
	}
	if spec.LeadTime < 0 {
		return nil, &domain.ConfigError{Field: id + ".lead_time", Value: fmt.Sprint(spec.LeadTime), Msg: "must not be negative"}
	}
	if spec.FutureLimit < 0 {
		return nil, &domain.ConfigError{Field: id + ".future_limit", Value: fmt.Sprint(spec.FutureLimit), Msg: "must not be negative"}
	}

	policy := &domain.BookingPolicy{
		ID:                id,
		Label:             spec.Label,
		Description:       spec.Description,
		Location:          spec.Location,
		DurationMinutes:   spec.Duration,
		SlotStepMinutes:   spec.Slots,
		LeadTimeHours:     spec.LeadTime,
		FutureLimitDays:   spec.FutureLimit,
		CollapseDays:      spec.CollapseDays,
		ShowConflictLabel: spec.ShowConflictLabel,
		Hidden:            spec.Hidden,
	}

	if len(spec.Overrides) == 0 {
		return policy, nil
	}

	policy.Overrides = make(map[string]domain.Availability, len(spec.Overrides))
	for key, text := range spec.Overrides {
		normalized, isDate, err := domain.NormalizeOverrideKey(key)
		if err != nil {
			return nil, fmt.Errorf("%s.overrides: %w", id, err)
		}
		// Два исходных ключа не должны схлопываться в один
		// нормализованный
		if _, exists := policy.Overrides[normalized]; exists {
			return nil, &domain.ConfigError{Field: id + ".overrides", Value: key, Msg: "duplicate override key"}
		}

		avail, err := domain.ParseAvailability(text)
		if err != nil {
			return nil, fmt.Errorf("%s.overrides.%s: %w", id, normalized, err)
		}

		policy.Overrides[normalized] = avail
		if isDate {
			policy.HasDateOverrides = true
		}
	}

	return policy, nil
}
