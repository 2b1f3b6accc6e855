// Package config loads AutoKuma's configuration from (in increasing
// precedence) built-in defaults, an optional config file, and
// AUTOKUMA__-prefixed environment variables (using "__" as the nested
// key separator, e.g. AUTOKUMA__KUMA__URL for kuma.url), using viper the
// same way the teacher binaries layer theirs.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is AutoKuma's full runtime configuration.
type Config struct {
	Kuma struct {
		URL            string        `mapstructure:"url"`
		Username       string        `mapstructure:"username"`
		Password       string        `mapstructure:"password"`
		MFAToken       string        `mapstructure:"mfa_token"`
		AuthToken      string        `mapstructure:"auth_token"`
		Headers        []string      `mapstructure:"headers"`
		ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
		CallTimeout    time.Duration `mapstructure:"call_timeout"`
		TLS            struct {
			Verify bool   `mapstructure:"verify"`
			Cert   string `mapstructure:"cert"`
		} `mapstructure:"tls"`
	} `mapstructure:"kuma"`

	TagName      string        `mapstructure:"tag_name"`
	TagColor     string        `mapstructure:"tag_color"`
	OnDelete     string        `mapstructure:"on_delete"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`

	StorePath string `mapstructure:"store_path"`
	DataPath  string `mapstructure:"data_path"`
	LogDir    string `mapstructure:"log_dir"`

	StaticMonitors string `mapstructure:"static_monitors"`

	// DefaultSettings is the newline-delimited "type.field: value" list
	// merged beneath every compiled entity's own fields; see
	// internal/compile.ParseDefaultSettings.
	DefaultSettings string `mapstructure:"default_settings"`

	// Snippets is the process-level snippet template registry (name ->
	// template body) that internal/compile resolves "__<name>.<id>"
	// label applications against.
	Snippets map[string]string `mapstructure:"snippets"`

	InsecureEnvAccess bool `mapstructure:"insecure_env_access"`

	Docker struct {
		Enabled    bool     `mapstructure:"enabled"`
		Host       string   `mapstructure:"host"`
		Hosts      []string `mapstructure:"hosts"`
		SocketPath string   `mapstructure:"socket_path"`
		Prefix     string   `mapstructure:"label_prefix"`
		// Source is decoded from the "source" key ("containers",
		// "services", or "both") but nothing reads it: the docker source
		// always scans containers and, when the daemon lists them,
		// services.
		Source string `mapstructure:"source"`
	} `mapstructure:"docker"`

	File struct {
		Enabled bool   `mapstructure:"enabled"`
		Dir     string `mapstructure:"dir"`
		Pattern string `mapstructure:"pattern"`
	} `mapstructure:"file"`

	Cluster struct {
		Enabled    bool   `mapstructure:"enabled"`
		Kubeconfig string `mapstructure:"kubeconfig"`
	} `mapstructure:"cluster"`

	Kubernetes struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"kubernetes"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Load reads configuration from configPath (if non-empty and present)
// layered under defaults, then overlaid with AUTOKUMA__-prefixed
// environment variables (e.g. AUTOKUMA__KUMA__URL, AUTOKUMA__SYNC_INTERVAL).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// viper joins prefix and key with a single "_"; a trailing "_" on the
	// prefix plus the "." -> "__" replacer below produces the spec's
	// "AUTOKUMA__KUMA__URL"-style double-underscore env var names.
	v.SetEnvPrefix("AUTOKUMA_")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "reading config file %s", configPath)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}

	if cfg.Kuma.URL == "" {
		return nil, errors.New("kuma.url must be set")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tag_name", "AutoKuma")
	v.SetDefault("tag_color", "#42C0FB")
	v.SetDefault("on_delete", "delete")
	v.SetDefault("sync_interval", 5*time.Second)
	v.SetDefault("store_path", "/data/autokuma.db")
	v.SetDefault("data_path", "/data")
	v.SetDefault("insecure_env_access", false)

	v.SetDefault("kuma.tls.verify", true)
	v.SetDefault("kuma.connect_timeout", 30*time.Second)
	v.SetDefault("kuma.call_timeout", 30*time.Second)

	v.SetDefault("docker.enabled", true)
	v.SetDefault("docker.label_prefix", "kuma.")
	v.SetDefault("docker.source", "containers")

	v.SetDefault("file.enabled", false)
	v.SetDefault("file.dir", "/config")
	v.SetDefault("file.pattern", "*.kuma")

	v.SetDefault("cluster.enabled", false)
	v.SetDefault("kubernetes.enabled", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "logfmt")

	v.SetDefault("metrics_addr", ":9090")
}
