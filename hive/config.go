package hive

// Config holds the file-based configuration for the preview server.
// These are bootstrap settings loaded from config.yaml.
type Config struct {
	DatabaseFile      string   `yaml:"dbfile"`
	Host              string   `yaml:"host"`
	BaseURL           string   `yaml:"base_url"`
	LogFormat         string   `yaml:"log_format"`
	LogLevel          string   `yaml:"log_level"`
	RenderWorkers     int      `yaml:"render_workers"`
	IPFSGateways      []string `yaml:"ipfs_gateways"`
	HiveDomains       []string `yaml:"hive_domains"`
	ConvertHiveURLs   bool     `yaml:"convert_hive_urls"`
	InternalURLPrefix string   `yaml:"internal_url_prefix"`
	HivemojiEnabled   bool     `yaml:"hivemoji_enabled"`
	HivemojiBaseURL   string   `yaml:"hivemoji_base_url"`
	HivemojiOwner     string   `yaml:"hivemoji_owner"`
}
