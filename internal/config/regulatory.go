package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/sjperalta/remuneraciones-api/internal/lre"
	"github.com/sjperalta/remuneraciones-api/internal/payroll"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"
)

//go:embed regulatory.default.yml
var defaultRegulatoryYAML []byte

// Regulatory holds every versioned regulatory table used by the payroll engine.
type Regulatory struct {
	Parameters payroll.Schedule `mapstructure:"parameters" json:"parameters"`
	Codes      lre.CodeSchedule `mapstructure:"codes" json:"codes"`
}

// Validate checks both schedules.
func (r Regulatory) Validate() error {
	if err := r.Parameters.Validate(); err != nil {
		return fmt.Errorf("regulatory.parameters: %w", err)
	}
	if err := r.Codes.Validate(); err != nil {
		return fmt.Errorf("regulatory.codes: %w", err)
	}
	return nil
}

// DefaultRegulatory parses the tables shipped with the binary.
func DefaultRegulatory() (Regulatory, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if err := v.ReadConfig(bytes.NewReader(defaultRegulatoryYAML)); err != nil {
		return Regulatory{}, fmt.Errorf("failed to read embedded regulatory config: %w", err)
	}
	return decodeRegulatory(v)
}

func decodeRegulatory(v *viper.Viper) (Regulatory, error) {
	var reg Regulatory
	if err := v.UnmarshalKey("regulatory", &reg); err != nil {
		return Regulatory{}, fmt.Errorf("failed to decode regulatory config: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return Regulatory{}, err
	}
	return reg, nil
}

// RegulatoryHolder serves the current regulatory tables and swaps them on file changes.
type RegulatoryHolder struct {
	current atomic.Value // holds Regulatory
}

// NewStaticRegulatoryHolder wraps fixed tables, without reloading.
func NewStaticRegulatoryHolder(reg Regulatory) *RegulatoryHolder {
	h := &RegulatoryHolder{}
	h.current.Store(reg)
	return h
}

// NewRegulatoryHolder loads regulatory.yml from path, or from the usual locations when path is
// empty, falling back to the embedded tables. A file on disk is watched and hot reloaded;
// an invalid update is logged and ignored.
func NewRegulatoryHolder(path string) (*RegulatoryHolder, error) {
	v := viper.New()
	v.SetConfigType("yml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("regulatory")
		v.AddConfigPath("/etc/remuneraciones")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	fromFile := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read regulatory config: %w", err)
		}
		fromFile = false
		if err := v.ReadConfig(bytes.NewReader(defaultRegulatoryYAML)); err != nil {
			return nil, fmt.Errorf("failed to read embedded regulatory config: %w", err)
		}
	}

	reg, err := decodeRegulatory(v)
	if err != nil {
		return nil, err
	}
	holder := NewStaticRegulatoryHolder(reg)

	if !fromFile {
		logger.Warn("Regulatory config file not found, using embedded tables")
		return holder, nil
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		updated, err := decodeRegulatory(v)
		if err != nil {
			logger.Error("Regulatory config reload ignored", "file", e.Name, "error", err)
			return
		}
		holder.current.Store(updated)
		logger.Info("Regulatory config reloaded", "file", e.Name, "versions", len(updated.Parameters))
	})
	v.WatchConfig()
	logger.Info("Loaded regulatory config", "file", v.ConfigFileUsed())

	return holder, nil
}

// Get returns the current tables.
func (h *RegulatoryHolder) Get() Regulatory {
	return h.current.Load().(Regulatory)
}

// ParametersFor returns the parameters in force for the period.
func (h *RegulatoryHolder) ParametersFor(year int, month time.Month) (payroll.Parameters, error) {
	return h.Get().Parameters.For(year, month)
}

// ResolverFor returns the code resolver in force for the period.
func (h *RegulatoryHolder) ResolverFor(year int, month time.Month) (lre.Resolver, error) {
	r, err := h.Get().Codes.For(year, month)
	if err != nil {
		return nil, err
	}
	return r, nil
}
