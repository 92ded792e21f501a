package shared

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./stylint.db"
	} `yaml:"database"`

	Analysis struct {
		Sources           []string `yaml:"sources"`            // ["./symbols"]
		SeverityThreshold string   `yaml:"severity_threshold"` // "INFO"|"WARNING"|"ERROR"
		DisabledRules     []string `yaml:"disabled_rules"`
		RulePacks         []string `yaml:"rule_packs"` // extra YAML rule packs
	} `yaml:"analysis"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Server struct {
		Addr         string `yaml:"addr"`          // ":8080"
		SessionHours int    `yaml:"session_hours"` // 12
	} `yaml:"server"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./stylint.db"
	c.Analysis.SeverityThreshold = "INFO"
	c.Reporting.OutDir = "./reports"
	c.Server.Addr = ":8080"
	c.Server.SessionHours = 12
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("STYLINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("STYLINT_SEVERITY"); v != "" {
		c.Analysis.SeverityThreshold = strings.ToUpper(v)
	}
	if v := os.Getenv("STYLINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("STYLINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("STYLINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	if v := os.Getenv("STYLINT_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STYLINT_SESSION_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.SessionHours = n
		}
	}
	return c, nil
}

// DisabledSet normalizes the disabled-rule list into the lookup shape the
// rules registry expects.
func (c Config) DisabledSet() map[string]bool {
	out := map[string]bool{}
	for _, id := range c.Analysis.DisabledRules {
		id = strings.ToUpper(strings.TrimSpace(id))
		if id != "" {
			out[id] = true
		}
	}
	return out
}
