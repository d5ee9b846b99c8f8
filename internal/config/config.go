// Package config loads and saves the seedforge YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/complex-gh/seedforge"
)

// FileName is the default configuration file name.
const FileName = "seedforge.yaml"

// Config holds user defaults for the CLI. Command-line flags override these
// values.
type Config struct {
	// Language is the wordlist language code, BCP 47 tag or English name.
	Language string `yaml:"language"`

	// Network, when set, selects the version bytes of the printed root keys
	// and of every Bitcoin and Bitcoin Cash record. When empty each coin keeps
	// its own network.
	Network NetworkConfig `yaml:"network"`

	// Derivation selects the account branch and first address index.
	Derivation DerivationConfig `yaml:"derivation"`

	// Coins lists the coin symbols the wallet command derives by default.
	Coins []string `yaml:"coins"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// NetworkConfig holds the network tier and variant.
type NetworkConfig struct {
	Tier    string `yaml:"tier,omitempty"`
	Variant string `yaml:"variant,omitempty"`
}

// IsSet reports whether a tier or variant was chosen.
func (n NetworkConfig) IsSet() bool {
	return n.Tier != "" || n.Variant != ""
}

// DerivationConfig holds the BIP44 account, change and address index.
type DerivationConfig struct {
	Account uint32 `yaml:"account"`
	Change  uint32 `yaml:"change"`
	Index   uint32 `yaml:"index"`
	Count   uint32 `yaml:"count"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Language:   string(seedforge.English),
		Derivation: DerivationConfig{Count: 1},
		Coins:      []string{"BTC", "BCH", "ETH", "NOSTR"},
		Logging:    LoggingConfig{Level: "warn"},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes c to path, creating the parent directory.
func (c *Config) Save(path string) error {
	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# seedforge configuration\n\n")
	if err := os.WriteFile(path, append(header, data...), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every value against the library's parsers.
func (c *Config) Validate() error {
	if _, err := seedforge.ParseLanguage(c.Language); err != nil {
		return fmt.Errorf("config language: %w", err)
	}
	if _, err := c.NetworkParams(); err != nil {
		return fmt.Errorf("config network: %w", err)
	}
	spec := seedforge.PathSpec{Purpose: 44, Account: c.Derivation.Account, Change: c.Derivation.Change}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("config derivation: %w", err)
	}
	if c.Derivation.Index >= 1<<31 {
		return fmt.Errorf("config derivation index: %w: %d", seedforge.ErrIndexOutOfRange, c.Derivation.Index)
	}
	for _, symbol := range c.Coins {
		if _, err := seedforge.LookupCoin(symbol); err != nil {
			return fmt.Errorf("config coins: %w", err)
		}
	}
	return nil
}

// NetworkParams resolves the configured tier and variant. Empty fields mean
// mainnet and the default variant.
func (c *Config) NetworkParams() (*seedforge.NetworkParams, error) {
	tier, err := seedforge.ParseTier(c.Network.Tier)
	if err != nil {
		return nil, err
	}
	variant, err := seedforge.ParseVariant(c.Network.Variant)
	if err != nil {
		return nil, err
	}
	return seedforge.LookupNetwork(variant, tier)
}

// Coin looks up a coin by symbol and rebinds it to the configured network
// when one is set.
func (c *Config) Coin(symbol string) (seedforge.Coin, error) {
	coin, err := seedforge.LookupCoin(symbol)
	if err != nil {
		return seedforge.Coin{}, err
	}
	if !c.Network.IsSet() {
		return coin, nil
	}
	net, err := c.NetworkParams()
	if err != nil {
		return seedforge.Coin{}, err
	}
	return coin.OnNetwork(net), nil
}

// DefaultPath returns the configuration path under the user config
// directory, or FileName in the working directory when there is none.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, "seedforge", FileName)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
