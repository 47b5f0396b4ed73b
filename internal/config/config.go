package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/hiveblocks/hiverender/hive"
	"github.com/hiveblocks/hiverender/internal/logger"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configFilename = "config.yaml"

// SetupConfig loads file-based configuration needed for bootstrap and
// initializes the logger. A default config file is written on first run.
func SetupConfig() *hive.Config {
	viper.SetDefault("dbfile", "hiverender.db")
	viper.SetDefault("host", "0.0.0.0:8080")
	viper.SetDefault("log_format", "pretty") // pretty, json, or text
	viper.SetDefault("log_level", "info")    // debug, info, warn, error
	viper.SetDefault("base_url", "http://localhost:8080")
	viper.SetDefault("render_workers", 0) // 0 = NumCPU
	viper.SetDefault("ipfs_gateways", []string{
		"https://ipfs.io/",
		"https://cloudflare-ipfs.com/",
	})
	viper.SetDefault("hive_domains", []string{
		"hive.blog", "peakd.com", "ecency.com",
	})
	viper.SetDefault("convert_hive_urls", true)
	viper.SetDefault("internal_url_prefix", "")
	viper.SetDefault("hivemoji_enabled", false)
	viper.SetDefault("hivemoji_base_url", "https://images.hive.blog/hivemoji")
	viper.SetDefault("hivemoji_owner", "")

	viper.SetConfigFile(configFilename)
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()

	createDefaultConfigFile := false

	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			createDefaultConfigFile = true
		} else {
			slog.Error("failed to read config", "error", err)
			os.Exit(1)
		}
	}

	// Initialize logger with configured format and level
	logger.InitLogger(
		logger.ParseLogFormat(viper.GetString("log_format")),
		logger.ParseLogLevel(viper.GetString("log_level")),
	)

	config := &hive.Config{
		DatabaseFile:      viper.GetString("dbfile"),
		Host:              viper.GetString("host"),
		BaseURL:           viper.GetString("base_url"),
		LogFormat:         viper.GetString("log_format"),
		LogLevel:          viper.GetString("log_level"),
		RenderWorkers:     viper.GetInt("render_workers"),
		IPFSGateways:      viper.GetStringSlice("ipfs_gateways"),
		HiveDomains:       viper.GetStringSlice("hive_domains"),
		ConvertHiveURLs:   viper.GetBool("convert_hive_urls"),
		InternalURLPrefix: viper.GetString("internal_url_prefix"),
		HivemojiEnabled:   viper.GetBool("hivemoji_enabled"),
		HivemojiBaseURL:   viper.GetString("hivemoji_base_url"),
		HivemojiOwner:     viper.GetString("hivemoji_owner"),
	}

	if createDefaultConfigFile {
		slog.Info("config not found, writing defaults", "file", configFilename)
		conf, err := os.Create(configFilename)
		if err != nil {
			slog.Error("failed to create config file", "error", err)
			os.Exit(1)
		}
		defer conf.Close()

		if err := yaml.NewEncoder(conf).Encode(config); err != nil {
			slog.Error("failed to write config file", "error", err)
			os.Exit(1)
		}
	}

	return config
}

// RenderOptions builds the rendering profile from the bootstrap config.
func RenderOptions(c *hive.Config) hive.RenderOptions {
	return hive.RenderOptions{
		BaseURL:           c.BaseURL,
		IPFSGateways:      c.IPFSGateways,
		HiveDomains:       c.HiveDomains,
		ConvertHiveURLs:   c.ConvertHiveURLs,
		InternalURLPrefix: c.InternalURLPrefix,
		Hivemoji: hive.HivemojiOptions{
			Enabled:      c.HivemojiEnabled,
			BaseURL:      c.HivemojiBaseURL,
			DefaultOwner: c.HivemojiOwner,
		},
	}
}
