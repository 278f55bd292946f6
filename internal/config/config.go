package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Port          int    `yaml:"port"`
	JwtTTLHours   int    `yaml:"jwt_ttl_hours"` // long-lived, "remember me" sessions
	SecureCookies bool   `yaml:"secure_cookies"`
	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLHours) * time.Hour
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func validate(cfg *Config) {
	missing := func(field string) {
		panic(fmt.Sprintf("missing required config field: %s", field))
	}
	if cfg.Public.Port == 0 {
		missing("port")
	}
	if cfg.Public.JwtTTLHours == 0 {
		missing("jwt_ttl_hours")
	}
	if cfg.Private.JwtKey == "" {
		missing("jwt_key")
	}
	if cfg.Private.Pg.Host == "" {
		missing("pg.host")
	}
	if cfg.Private.Pg.Dbname == "" {
		missing("pg.dbname")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	validate(cfg)
	return cfg
}
