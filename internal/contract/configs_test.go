package contract

import (
	"testing"

	"github.com/capsight/capsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Org:          "acme",
		Workspace:    "eng",
		From:         "2024-01-01",
		To:           "2024-01-14",
		Output:       "text",
		StoreBackend: "sqlite",
		Emoji:        "yes",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: nil, expectError: false},
		{name: "missing org", mutate: func(in *ConfigRawInput) { in.Org = "" }, expectError: true},
		{name: "missing workspace", mutate: func(in *ConfigRawInput) { in.Workspace = "" }, expectError: true},
		{name: "invalid output format", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "invalid from date", mutate: func(in *ConfigRawInput) { in.From = "01/01/2024" }, expectError: true},
		{name: "inverted range", mutate: func(in *ConfigRawInput) { in.From = "2024-02-01"; in.To = "2024-01-01" }, expectError: true},
		{name: "range too long", mutate: func(in *ConfigRawInput) { in.To = "2026-01-01" }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.StoreBackend = "oracle" }, expectError: true},
		{name: "invalid emoji flag", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: true},
		{name: "negative hours per day", mutate: func(in *ConfigRawInput) { in.HoursPerDay = -1 }, expectError: true},
		{name: "negative window", mutate: func(in *ConfigRawInput) { in.VelocityWindow = -1 }, expectError: true},
		{name: "mysql without connect", mutate: func(in *ConfigRawInput) { in.StoreBackend = "mysql" }, expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidate_Fields(t *testing.T) {
	input := validRawInput()
	input.Users = " u1, u2 ,,u3 "
	input.Projects = "p1"
	input.Threshold = 1.2
	input.Weekly = true
	input.Output = "JSON"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, "acme", cfg.Org)
	assert.Equal(t, "eng", cfg.Workspace)
	assert.Equal(t, []string{"u1", "u2", "u3"}, cfg.UserIDs)
	assert.Equal(t, []string{"p1"}, cfg.ProjectIDs)
	require.NotNil(t, cfg.Threshold)
	assert.Equal(t, 1.2, *cfg.Threshold)
	assert.True(t, cfg.Weekly)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	input := validRawInput()
	input.From = ""
	input.To = ""

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	// The default range starts today and spans two weeks.
	assert.NotEmpty(t, cfg.From)
	assert.NotEmpty(t, cfg.To)
	assert.Nil(t, cfg.Threshold)
	assert.Equal(t, schema.DefaultHoursPerDay, cfg.HoursPerDay)
	assert.Equal(t, schema.DefaultHoursPerPoint, cfg.HoursPerPoint)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name        string
		backend     schema.DatabaseBackend
		connStr     string
		expectError bool
	}{
		{"sqlite never requires one", schema.SQLiteBackend, "", false},
		{"none never requires one", schema.NoneBackend, "", false},
		{"valid mysql", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/capsight", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass/capsight", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"valid postgres", schema.PostgreSQLBackend, "host=localhost dbname=capsight sslmode=disable", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=capsight", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, LowValue, GetPlainLabel(0.4))
	assert.Equal(t, ModerateValue, GetPlainLabel(0.9))
	assert.Equal(t, LowValue, GetPlainLabel(0))
	assert.Equal(t, HighValue, GetPlainLabel(1.2))
	assert.Equal(t, CriticalValue, GetPlainLabel(1.8))
}

func TestSplitCommaList(t *testing.T) {
	assert.Nil(t, splitCommaList(""))
	assert.Nil(t, splitCommaList("  "))
	assert.Equal(t, []string{"a", "b"}, splitCommaList("a, ,b"))
}
