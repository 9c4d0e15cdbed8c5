/*
 Caretaker, a scheduler for ephemeral game servers.
 Copyright (C) 2025 Yannic Rieger <oss@76k.io>

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package caretaker

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spacechunks/caretaker/cloud"
	"github.com/spacechunks/caretaker/provision"
)

var (
	ErrNoProvider        = errors.New("no cloud provider configured")
	ErrMultipleProviders = errors.New("multiple cloud providers configured")
)

// Secret is a string config value that may also be given as an
// absolute path, in which case the files trimmed contents are used.
type Secret string

func (s *Secret) UnmarshalYAML(data []byte) error {
	var raw string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.HasPrefix(raw, "/") {
		if _, err := os.Stat(raw); err == nil {
			content, err := os.ReadFile(raw)
			if err != nil {
				return fmt.Errorf("read secret file %s: %w", raw, err)
			}
			*s = Secret(strings.TrimSpace(string(content)))
			return nil
		}
	}
	*s = Secret(raw)
	return nil
}

type Config struct {
	Hetzner      *HetznerConfig      `yaml:"hetzner"`
	DigitalOcean *DigitalOceanConfig `yaml:"digitalocean"`
	Server       ServerConfig        `yaml:"server"`
	Schedule     ScheduleConfig      `yaml:"schedule"`
	DynDNS       *DynDNSConfig       `yaml:"dyndns"`
}

type HetznerConfig struct {
	Token      Secret `yaml:"token"`
	Location   string `yaml:"location"`
	ServerType string `yaml:"server_type"`
	Image      string `yaml:"image"`
}

type DigitalOceanConfig struct {
	Token  Secret `yaml:"token"`
	Region string `yaml:"region"`
	Size   string `yaml:"size"`
	Image  string `yaml:"image"`
}

type ServerConfig struct {
	Image          string            `yaml:"image"`
	Name           string            `yaml:"name"`
	Password       Secret            `yaml:"password"`
	RconPassword   Secret            `yaml:"rcon_password"`
	RconPort       uint16            `yaml:"rcon_port"`
	Env            map[string]string `yaml:"env"`
	Ports          []string          `yaml:"ports"`
	SSHKeys        []string          `yaml:"ssh_keys"`
	ManageExisting bool              `yaml:"manage_existing"`
}

type ScheduleConfig struct {
	Start        string `yaml:"start"`
	Stop         string `yaml:"stop"`
	GraceSeconds uint   `yaml:"grace_seconds"`
}

type DynDNSConfig struct {
	UpdateURL string `yaml:"update_url"`
	Hostname  string `yaml:"hostname"`
	Username  string `yaml:"username"`
	Password  Secret `yaml:"password"`
}

// LoadConfig reads, defaults and validates the config file. schedule
// expressions are parsed here so a malformed one fails the process at
// start-up instead of inside the poll loop.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg.applyDefaults()

	if cfg.Hetzner == nil && cfg.DigitalOcean == nil {
		return Config{}, ErrNoProvider
	}
	if cfg.Hetzner != nil && cfg.DigitalOcean != nil {
		return Config{}, ErrMultipleProviders
	}
	if _, err := cfg.ParseSchedule(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Image == "" {
		c.Server.Image = "ghcr.io/spacechunks/gameserver"
	}
	if c.Server.Name == "" {
		c.Server.Name = "gameserver"
	}
	if c.Server.RconPort == 0 {
		c.Server.RconPort = 27015
	}
	if len(c.Server.Ports) == 0 {
		c.Server.Ports = []string{
			"27015:27015",
			"27015:27015/udp",
			"27020:27020/udp",
		}
	}
	if c.Schedule.GraceSeconds == 0 {
		c.Schedule.GraceSeconds = 1800
	}
	if c.Hetzner != nil {
		if c.Hetzner.ServerType == "" {
			c.Hetzner.ServerType = "cx22"
		}
		if c.Hetzner.Image == "" {
			c.Hetzner.Image = "docker-ce"
		}
	}
	if c.DigitalOcean != nil {
		if c.DigitalOcean.Size == "" {
			c.DigitalOcean.Size = "s-2vcpu-2gb"
		}
		if c.DigitalOcean.Image == "" {
			c.DigitalOcean.Image = "docker-20-04"
		}
	}
}

// Cloud returns the configured provider adapter.
func (c Config) Cloud() (cloud.Cloud, error) {
	switch {
	case c.Hetzner != nil && c.DigitalOcean != nil:
		return nil, ErrMultipleProviders
	case c.Hetzner != nil:
		return cloud.NewHetzner(
			string(c.Hetzner.Token),
			c.Hetzner.Location,
			c.Hetzner.ServerType,
			c.Hetzner.Image,
		), nil
	case c.DigitalOcean != nil:
		return cloud.NewDigitalOcean(
			string(c.DigitalOcean.Token),
			c.DigitalOcean.Region,
			c.DigitalOcean.Size,
			c.DigitalOcean.Image,
		), nil
	default:
		return nil, ErrNoProvider
	}
}

func (c Config) ParseSchedule() (Schedule, error) {
	return ParseSchedule(c.Schedule.Start, c.Schedule.Stop)
}

func (c Config) GraceDuration() time.Duration {
	return time.Duration(c.Schedule.GraceSeconds) * time.Second
}

// ProvisionConfig derives the setup sequence parameters for the
// provisioning session.
func (c Config) ProvisionConfig() provision.Config {
	env := map[string]string{
		"NAME":          c.Server.Name,
		"PASSWORD":      string(c.Server.Password),
		"RCON_PASSWORD": string(c.Server.RconPassword),
	}
	for k, v := range c.Server.Env {
		env[k] = v
	}

	var hostname string
	if c.DynDNS != nil {
		hostname = c.DynDNS.Hostname
	}

	return provision.Config{
		Image:       c.Server.Image,
		Name:        c.Server.Name,
		Env:         env,
		Ports:       c.Server.Ports,
		Hostname:    hostname,
		SettleDelay: 10 * time.Second,
		PullDelay:   2 * time.Second,
		PullRetries: 5,
	}
}
