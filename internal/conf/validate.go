// conf/validate.go

package conf

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateProviderSettings(&settings.Provider); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateDedupSettings(&settings.Dedup); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOutputSettings(&settings.Output); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateWebServerSettings(&settings.WebServer); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateProviderSettings validates the external provider settings
func validateProviderSettings(settings *ProviderSettings) error {
	var errs []string

	if settings.BaseURL == "" {
		errs = append(errs, "provider base URL is required")
	} else if _, err := url.ParseRequestURI(settings.BaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("provider base URL is invalid: %v", err))
	}

	if settings.PageSize < 1 || settings.PageSize > 100 {
		errs = append(errs, "provider page size must be between 1 and 100")
	}

	if settings.RequestDelayMS < 0 {
		errs = append(errs, "provider request delay must not be negative")
	}

	if settings.TimeoutSeconds < 1 {
		errs = append(errs, "provider timeout must be at least 1 second")
	}

	if settings.MaxRetries < 1 {
		errs = append(errs, "provider max retries must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("provider settings errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// validateDedupSettings validates the de-duplication policy
func validateDedupSettings(settings *DedupSettings) error {
	switch settings.Normalize {
	case "exact", "trim", "fold":
		return nil
	default:
		return fmt.Errorf("dedup normalize must be one of exact, trim or fold, got %q", settings.Normalize)
	}
}

// validateOutputSettings validates the database output settings
func validateOutputSettings(settings *OutputSettings) error {
	var errs []string

	if !settings.SQLite.Enabled && !settings.MySQL.Enabled {
		errs = append(errs, "at least one database output must be enabled")
	}

	if settings.SQLite.Enabled && settings.SQLite.Path == "" {
		errs = append(errs, "SQLite database path is required")
	}

	if settings.MySQL.Enabled {
		if settings.MySQL.Database == "" {
			errs = append(errs, "MySQL database name is required")
		}
		if settings.MySQL.Host == "" {
			errs = append(errs, "MySQL host is required")
		}
		if port, err := strconv.Atoi(settings.MySQL.Port); err != nil || port < 1 || port > 65535 {
			errs = append(errs, "MySQL port must be a number between 1 and 65535")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("output settings errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// validateWebServerSettings validates the HTTP control surface settings
func validateWebServerSettings(settings *WebServerSettings) error {
	if !settings.Enabled {
		return nil
	}
	if port, err := strconv.Atoi(settings.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("web server port must be a number between 1 and 65535, got %q", settings.Port)
	}
	return nil
}
