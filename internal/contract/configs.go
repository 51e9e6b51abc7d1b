package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/huangsam/trustscore/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 2
	DefaultHTTPTimeout = 10 * time.Second
	DefaultHFEndpoint  = "https://huggingface.co"
	MaxVerbosity       = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// OperationalizationRaw is one plan entry from the YAML config file.
// Pointer fields are optional and fall back to the built-in defaults.
type OperationalizationRaw struct {
	MetricID        string             `mapstructure:"metric_id"`
	Weight          *float64           `mapstructure:"weight"`
	Normalization   string             `mapstructure:"normalization"`
	NormParams      map[string]float64 `mapstructure:"norm_params"`
	GreaterIsBetter *bool              `mapstructure:"greater_is_better"`
	Params          map[string]any     `mapstructure:"params"`
}

// Config holds the runtime configuration for scoring.
// This struct remains the "final, validated" config.
type Config struct {
	URLs       []string
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Verbosity  int

	ContextFile  string
	Offline      bool
	GitHubToken  string // Please use env var as this is plaintext
	GitHubAPIURL string
	HFEndpoint   string
	HTTPTimeout  time.Duration

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// Thresholds are resolved from METRIC_THRESHOLD and NETSCORE_THRESHOLD
	Thresholds engine.Thresholds

	// Plan is the default plan, or the config file plan when one is given
	Plan []engine.Operationalization

	// CompatibleLicenses is injected into every context when non-empty
	CompatibleLicenses []string

	// Warnings are non-fatal findings from validation, logged by the caller
	Warnings []string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	URLs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output           string `mapstructure:"output"`
	NDJSON           bool   `mapstructure:"ndjson"`
	OutputFile       string `mapstructure:"output-file"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	Verbosity        int    `mapstructure:"verbosity"`
	ContextFile      string `mapstructure:"context-file"`
	Offline          bool   `mapstructure:"offline"`
	Timeout          string `mapstructure:"timeout"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields bound to environment variables ---
	MetricThreshold   string `mapstructure:"metric-threshold"`
	NetScoreThreshold string `mapstructure:"netscore-threshold"`
	GitHubToken       string `mapstructure:"github-token"`
	GitHubAPIURL      string `mapstructure:"github-api-url"`
	HFEndpoint        string `mapstructure:"hf-endpoint"`

	// --- From config file only ---
	Plan     []OperationalizationRaw `mapstructure:"plan"`
	Licenses []string                `mapstructure:"licenses"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.URLs = slices.Clone(c.URLs)
	clone.CompatibleLicenses = slices.Clone(c.CompatibleLicenses)
	clone.Warnings = slices.Clone(c.Warnings)
	if c.Plan != nil {
		clone.Plan = make([]engine.Operationalization, len(c.Plan))
		for i, op := range c.Plan {
			op.Params = maps.Clone(op.Params)
			op.NormParams = maps.Clone(op.NormParams)
			clone.Plan[i] = op
		}
	}
	return &clone
}

// ConfigParams summarizes the config for the run history.
func (c *Config) ConfigParams() map[string]any {
	ids := make([]string, len(c.Plan))
	for i, op := range c.Plan {
		ids[i] = op.MetricID
	}
	return map[string]any{
		"workers":            c.Workers,
		"output":             string(c.Output),
		"offline":            c.Offline,
		"metric_threshold":   c.Thresholds.Metric,
		"netscore_threshold": c.Thresholds.NetScore,
		"plan":               ids,
		"urls":               len(c.URLs),
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, reg *engine.Registry, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	processThresholds(cfg, input)
	if err := processPlan(cfg, reg, input); err != nil {
		return err
	}
	processLicenses(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.HistoryBackend)))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.URLs = slices.Clone(input.URLs)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.ContextFile = strings.TrimSpace(input.ContextFile)
	cfg.Offline = input.Offline
	cfg.GitHubToken = strings.TrimSpace(input.GitHubToken)
	cfg.GitHubAPIURL = strings.TrimSpace(input.GitHubAPIURL)

	cfg.HFEndpoint = strings.TrimRight(strings.TrimSpace(input.HFEndpoint), "/")
	if cfg.HFEndpoint == "" {
		cfg.HFEndpoint = DefaultHFEndpoint
	}

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Verbosity Validation ---
	if input.Verbosity < 0 {
		return fmt.Errorf("verbosity cannot be negative (received %d)", input.Verbosity)
	}
	cfg.Verbosity = min(input.Verbosity, MaxVerbosity)

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if input.NDJSON {
		cfg.Output = schema.NDJSONOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, ndjson, csv", input.Output)
	}

	// --- 4. Timeout ---
	cfg.HTTPTimeout = DefaultHTTPTimeout
	if t := strings.TrimSpace(input.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout '%s'. expected a positive duration like 10s", input.Timeout)
		}
		cfg.HTTPTimeout = d
	}

	return nil
}

// processThresholds resolves both thresholds. Malformed overrides fall back to
// the default instead of failing.
func processThresholds(cfg *Config, input *ConfigRawInput) {
	cfg.Thresholds = engine.NewThresholds(input.MetricThreshold, input.NetScoreThreshold)
}

// processPlan builds the operationalization list from the config file, or
// uses the default plan when none is configured.
func processPlan(cfg *Config, reg *engine.Registry, input *ConfigRawInput) error {
	if len(input.Plan) == 0 {
		cfg.Plan = metrics.DefaultPlan()
	} else {
		plan := make([]engine.Operationalization, 0, len(input.Plan))
		for i, raw := range input.Plan {
			op, err := raw.toOperationalization()
			if err != nil {
				return fmt.Errorf("plan entry %d: %w", i+1, err)
			}
			plan = append(plan, op)
		}
		cfg.Plan = plan
	}

	dups, err := metrics.ValidatePlan(cfg.Plan, reg)
	if err != nil {
		return err
	}
	for _, id := range dups {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("metric %q appears more than once in the plan; the last result wins", id))
	}
	return nil
}

func (raw OperationalizationRaw) toOperationalization() (engine.Operationalization, error) {
	id := strings.TrimSpace(raw.MetricID)
	if id == "" {
		return engine.Operationalization{}, fmt.Errorf("%w: missing metric_id", engine.ErrInvalidConfiguration)
	}
	weight := 1.0
	if raw.Weight != nil {
		weight = *raw.Weight
	}
	if weight < 0 {
		return engine.Operationalization{}, fmt.Errorf("%w: negative weight %.3f for metric %q", engine.ErrInvalidConfiguration, weight, id)
	}

	op := engine.NewOperationalization(id, weight)
	norm := engine.Normalization(strings.ToLower(strings.TrimSpace(raw.Normalization)))
	if norm == "" && len(raw.NormParams) > 0 {
		norm = engine.Identity
	}
	if norm != "" {
		op = op.WithNormalization(norm, raw.NormParams)
	}
	if raw.GreaterIsBetter != nil {
		op.GreaterIsBetter = *raw.GreaterIsBetter
	}
	op.Params = maps.Clone(raw.Params)
	return op, nil
}

// processLicenses lower-cases and de-duplicates the configured license list.
func processLicenses(cfg *Config, input *ConfigRawInput) {
	cfg.CompatibleLicenses = nil
	for _, l := range input.Licenses {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(cfg.CompatibleLicenses, l) {
			cfg.CompatibleLicenses = append(cfg.CompatibleLicenses, l)
		}
	}
}
