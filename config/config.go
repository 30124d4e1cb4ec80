// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

const minSessionSecretLength = 32

type Server struct {
	Host         string        `toml:"host" yaml:"host"`
	Port         int           `toml:"port" yaml:"port"`
	Security     string        `toml:"security" yaml:"security"`
	ValidateCert bool          `toml:"validate_cert" yaml:"validate_cert"`
	DialTimeout  time.Duration `toml:"dial_timeout" yaml:"dial_timeout"`
}

type Smtp struct {
	Server     `yaml:",inline"`
	SendLimit  int           `toml:"send_limit" yaml:"send_limit"`
	SendWindow time.Duration `toml:"send_window" yaml:"send_window"`
}

type Config struct {
	Listen   string `toml:"listen" yaml:"listen"`
	Database string `toml:"database" yaml:"database"`
	TempDir  string `toml:"temp_dir" yaml:"temp_dir"`
	AssetDir string `toml:"asset_dir" yaml:"asset_dir"`

	SessionSecret   string        `toml:"session_secret" yaml:"session_secret"`
	SessionLifetime time.Duration `toml:"session_lifetime" yaml:"session_lifetime"`

	Imap Server `toml:"imap" yaml:"imap"`
	Smtp Smtp   `toml:"smtp" yaml:"smtp"`

	ModoboaDsn string `toml:"modoboa_dsn" yaml:"modoboa_dsn"`

	SpamassassinHost string `toml:"spamassassin_host" yaml:"spamassassin_host"`
	RspamdController string `toml:"rspamd_controller" yaml:"rspamd_controller"`
	RspamdPassword   string `toml:"rspamd_password" yaml:"rspamd_password"`
	LearnConcurrency int    `toml:"learn_concurrency" yaml:"learn_concurrency"`

	Loglevel *string `toml:"loglevel" yaml:"loglevel"`
}

func defaults() *Config {
	return &Config{
		Listen:          ":8080",
		Database:        "webmail.db",
		TempDir:         filepath.Join("storage", "temp-attachments"),
		AssetDir:        filepath.Join("storage", "public"),
		SessionLifetime: 8 * time.Hour,
		Imap: Server{
			Host:         "127.0.0.1",
			Port:         993,
			Security:     "tls",
			ValidateCert: true,
			DialTimeout:  10 * time.Second,
		},
		Smtp: Smtp{
			Server: Server{
				Host:        "127.0.0.1",
				Port:        587,
				Security:    "starttls",
				DialTimeout: 10 * time.Second,
			},
			SendLimit:  30,
			SendWindow: time.Hour,
		},
		LearnConcurrency: 4,
	}
}

// ReadConfig reads a TOML file, or YAML when the file is named *.yml or *.yaml.
// Unset fields keep their defaults.
func ReadConfig(filename string) (*Config, error) {
	config := defaults()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yml", ".yaml":
		content, err := ioutil.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		err = yaml.UnmarshalStrict(content, config)
		if err != nil {
			return nil, fmt.Errorf("could not parse config file: %w", err)
		}
	default:
		_, err := toml.DecodeFile(filename, config)
		if err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	err := config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Listen, "Listen must not be empty, set to the address the http server binds to"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.TempDir, "TempDir must not be empty, set to a directory for uploaded attachments"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.AssetDir, "AssetDir must not be empty, set to a directory for branding images"); err != nil {
		return err
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		return fmt.Errorf("SessionSecret must be at least %d characters long", minSessionSecretLength)
	}
	if c.SessionLifetime <= 0 {
		return errors.New("SessionLifetime must be positive")
	}

	if err := c.Imap.validate("Imap"); err != nil {
		return err
	}
	if err := c.Smtp.validate("Smtp"); err != nil {
		return err
	}
	if c.Smtp.SendLimit <= 0 || c.Smtp.SendWindow <= 0 {
		return errors.New("Smtp send_limit and send_window must be positive")
	}

	spamassassinSet := len(strings.TrimSpace(c.SpamassassinHost)) > 0
	rspamdSet := len(strings.TrimSpace(c.RspamdController)) > 0
	if rspamdSet && spamassassinSet {
		return fmt.Errorf("SpamassassinHost and RspamdController cannot be set at the same time")
	}

	if rspamdSet {
		if err := validateNonEmptyStringField(c.RspamdPassword, "RspamdPassword must be set if RspamdController is set"); err != nil {
			return err
		}
	}

	if c.LearnConcurrency <= 0 {
		return errors.New("LearnConcurrency must be positive")
	}

	return nil
}

func (s *Server) validate(section string) error {
	if err := validateNonEmptyStringField(s.Host, fmt.Sprintf("%s host must not be empty", section)); err != nil {
		return err
	}

	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("%s port %d is out of range", section, s.Port)
	}

	switch s.Security {
	case "tls", "starttls", "none":
	default:
		return fmt.Errorf("%s security must be one of tls, starttls or none, got %q", section, s.Security)
	}

	return nil
}

// ClassifierConfigured reports whether report spam/not spam can train anything.
func (c *Config) ClassifierConfigured() bool {
	return len(strings.TrimSpace(c.SpamassassinHost)) > 0 || len(strings.TrimSpace(c.RspamdController)) > 0
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
