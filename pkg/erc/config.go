package erc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries per-rule severity overrides. Rules without an override keep
// their built-in severity. An override applies uniformly to every violation
// of that rule, including rules whose built-in severity varies by pin type.
type Config struct {
	Severity map[ViolationType]Severity `yaml:"severity"`
}

// LoadConfig reads a YAML severity-override file:
//
//	severity:
//	  unconnected_pin: warning
//	  missing_net_label: error
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erc: failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses severity overrides from YAML bytes
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("erc: failed to parse config: %w", err)
	}
	for rule, sev := range cfg.Severity {
		switch rule {
		case UnconnectedPin, ConflictingPinTypes, MissingPowerFlag,
			DuplicateReference, UnconnectedWire, MissingNetLabel:
		default:
			return nil, fmt.Errorf("erc: unknown rule %q in config", rule)
		}
		if sev != SeverityError && sev != SeverityWarning {
			return nil, fmt.Errorf("erc: invalid severity %q for rule %q", sev, rule)
		}
	}
	return &cfg, nil
}

func (c *Config) severityFor(rule ViolationType, builtin Severity) Severity {
	if c == nil || c.Severity == nil {
		return builtin
	}
	if sev, ok := c.Severity[rule]; ok {
		return sev
	}
	return builtin
}
