package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Provider = ProviderSettings{
		Name:           "giantbomb",
		BaseURL:        "https://www.giantbomb.com/api",
		PageSize:       100,
		RequestDelayMS: 1000,
		TimeoutSeconds: 30,
		MaxRetries:     3,
	}
	s.Dedup = DedupSettings{Normalize: "exact"}
	s.Output.SQLite = SQLiteSettings{Enabled: true, Path: "gamevault.db"}
	s.WebServer = WebServerSettings{Enabled: true, Port: "8080"}
	return s
}

func TestValidateSettings_Valid(t *testing.T) {
	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettings_ProviderErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"missing base url", func(s *Settings) { s.Provider.BaseURL = "" }},
		{"invalid base url", func(s *Settings) { s.Provider.BaseURL = "not a url" }},
		{"page size zero", func(s *Settings) { s.Provider.PageSize = 0 }},
		{"page size too large", func(s *Settings) { s.Provider.PageSize = 500 }},
		{"negative delay", func(s *Settings) { s.Provider.RequestDelayMS = -1 }},
		{"zero retries", func(s *Settings) { s.Provider.MaxRetries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			assert.Error(t, ValidateSettings(s))
		})
	}
}

func TestValidateSettings_DedupPolicy(t *testing.T) {
	for _, policy := range []string{"exact", "trim", "fold"} {
		s := validSettings()
		s.Dedup.Normalize = policy
		assert.NoError(t, ValidateSettings(s), policy)
	}

	s := validSettings()
	s.Dedup.Normalize = "lowercase"
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettings_Output(t *testing.T) {
	s := validSettings()
	s.Output.SQLite.Enabled = false
	assert.Error(t, ValidateSettings(s), "no database enabled")

	s = validSettings()
	s.Output.SQLite.Enabled = false
	s.Output.MySQL = MySQLSettings{
		Enabled:  true,
		Username: "gamevault",
		Database: "gamevault",
		Host:     "localhost",
		Port:     "3306",
	}
	assert.NoError(t, ValidateSettings(s))

	s.Output.MySQL.Port = "not-a-port"
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettings_WebServer(t *testing.T) {
	s := validSettings()
	s.WebServer.Port = "0"
	assert.Error(t, ValidateSettings(s))

	// Disabled web server skips port validation
	s.WebServer.Enabled = false
	assert.NoError(t, ValidateSettings(s))
}
