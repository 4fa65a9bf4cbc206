package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/opd-ai/go-gradientpanel/internal/compositor"
	"github.com/opd-ai/go-gradientpanel/internal/gradient"
)

// ValidationError represents a configuration validation error.
// It contains the field name and a description of the issue.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the results of a configuration validation.
type ValidationResult struct {
	// Errors contains all validation errors found.
	Errors []ValidationError
	// Warnings contains non-fatal issues such as missing image files.
	Warnings []ValidationError
}

// IsValid returns true if there are no validation errors.
func (vr *ValidationResult) IsValid() bool {
	return len(vr.Errors) == 0
}

// Error returns a combined error message if there are errors, nil otherwise.
func (vr *ValidationResult) Error() error {
	if len(vr.Errors) == 0 {
		return nil
	}
	messages := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		messages = append(messages, e.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}

// AddError adds a validation error.
func (vr *ValidationResult) AddError(field, message string) {
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning adds a validation warning.
func (vr *ValidationResult) AddWarning(field, message string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Message: message})
}

// Validator checks scenes.
type Validator struct {
	// checkFiles reports missing image files as warnings.
	checkFiles bool
}

// NewValidator creates a Validator that also checks image files exist.
func NewValidator() *Validator {
	return &Validator{checkFiles: true}
}

// WithFileChecks enables or disables image file checks.
func (v *Validator) WithFileChecks(on bool) *Validator {
	v.checkFiles = on
	return v
}

// Validate performs validation of a Config.
func (v *Validator) Validate(cfg *Config) *ValidationResult {
	result := &ValidationResult{}
	v.validateWindow(&cfg.Window, result)
	v.validateWidgets(cfg.Widgets, result)
	return result
}

const maxDimension = 10000

func (v *Validator) validateWindow(wc *WindowConfig, result *ValidationResult) {
	if wc.Width <= 0 {
		result.AddError("window.width", fmt.Sprintf("must be positive, got %d", wc.Width))
	}
	if wc.Height <= 0 {
		result.AddError("window.height", fmt.Sprintf("must be positive, got %d", wc.Height))
	}
	if wc.Width > maxDimension {
		result.AddWarning("window.width", fmt.Sprintf("unusually large value %d", wc.Width))
	}
	if wc.Height > maxDimension {
		result.AddWarning("window.height", fmt.Sprintf("unusually large value %d", wc.Height))
	}

	switch wc.Background {
	case "", "solid", "none", "gradient":
	default:
		result.AddError("window.background", fmt.Sprintf("unknown background mode: %s", wc.Background))
	}

	if wc.ARGBValue < 0 || wc.ARGBValue > 255 {
		result.AddWarning("window.argb_value", fmt.Sprintf("%d is outside 0-255 and will be clamped", wc.ARGBValue))
	}

	v.validateColor("window.back_color", wc.BackColor, result)
	v.validateColor("window.color1", wc.Color1, result)
	v.validateColor("window.color2", wc.Color2, result)
	v.validateColor("window.border_color", wc.BorderColor, result)
	v.validateLayout("window.layout", wc.Layout, result)
	v.validateDirection("window.right_to_left", wc.RightToLeft, result)
	v.validateImage("window.image", wc.Image, result)
}

func (v *Validator) validateWidgets(widgets []WidgetConfig, result *ValidationResult) {
	seen := make(map[string]bool, len(widgets))
	for i, w := range widgets {
		field := fmt.Sprintf("widgets[%d]", i)
		if w.Name != "" {
			field = fmt.Sprintf("widgets[%s]", w.Name)
		}

		switch {
		case w.Name == "":
			result.AddError(field+".name", "is required")
		case seen[w.Name]:
			result.AddError(field+".name", "duplicate widget name")
		}

		switch w.Kind {
		case "", "panel", "label", "group":
		default:
			result.AddError(field+".kind", fmt.Sprintf("unknown widget kind: %s", w.Kind))
		}

		if w.Width < 0 {
			result.AddError(field+".width", fmt.Sprintf("must be non-negative, got %d", w.Width))
		}
		if w.Height < 0 {
			result.AddError(field+".height", fmt.Sprintf("must be non-negative, got %d", w.Height))
		}

		if w.Parent != "" && !seen[w.Parent] {
			result.AddError(field+".parent", fmt.Sprintf("%s must be declared before its children", w.Parent))
		}

		v.validateColor(field+".back_color", w.BackColor, result)
		v.validateColor(field+".fore_color", w.ForeColor, result)
		v.validateColor(field+".color1", w.Color1, result)
		v.validateColor(field+".color2", w.Color2, result)
		v.validateLayout(field+".layout", w.Layout, result)
		v.validateDirection(field+".right_to_left", w.RightToLeft, result)
		v.validateImage(field+".image", w.Image, result)

		if w.Name != "" {
			seen[w.Name] = true
		}
	}
}

func (v *Validator) validateColor(field, value string, result *ValidationResult) {
	if value == "" {
		return
	}
	if _, err := gradient.ParseColor(value); err != nil {
		result.AddError(field, err.Error())
	}
}

func (v *Validator) validateLayout(field, value string, result *ValidationResult) {
	if _, err := compositor.ParseImageLayout(value); err != nil {
		result.AddError(field, err.Error())
	}
}

func (v *Validator) validateDirection(field, value string, result *ValidationResult) {
	if _, err := ParseRightToLeft(value); err != nil {
		result.AddError(field, err.Error())
	}
}

func (v *Validator) validateImage(field, path string, result *ValidationResult) {
	if path == "" || !v.checkFiles {
		return
	}
	if _, err := os.Stat(path); err != nil {
		result.AddWarning(field, fmt.Sprintf("image not readable: %v", err))
	}
}

// ValidateConfig validates cfg and returns all errors as one, or nil.
// Warnings are ignored.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return NewValidator().Validate(cfg).Error()
}
