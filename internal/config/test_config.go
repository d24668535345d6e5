package config

import "time"

// TestConfig returns a config suitable for testing: history off, short
// timeouts, no logging.
func TestConfig() *Config {
	d := defaultConfig()
	return &Config{
		API: APIConfig{
			BaseURL:   "http://127.0.0.1:8000",
			Timeout:   5 * time.Second,
			UserAgent: "adfind-test/1.0",
		},
		UI: d.UI,
		History: HistoryConfig{
			Enabled: false,
			Limit:   50,
		},
		Browser: d.Browser,
		Keys:    d.Keys,
		Log:     LogConfig{Level: "off"},
	}
}
