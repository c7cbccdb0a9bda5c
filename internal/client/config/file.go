package config

import (
	"os"

	"github.com/dmitrijs2005/zkauth/internal/flagx"
	"github.com/spf13/viper"
)

// parseFile overlays Config with values from the file named by -c / -config.
// Durations accept Go syntax ("3s"). Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}

	if v.IsSet("server_endpoint_addr") {
		cfg.ServerEndpointAddr = v.GetString("server_endpoint_addr")
	}
	if v.IsSet("online_check_interval") {
		cfg.OnlineCheckInterval = v.GetDuration("online_check_interval")
	}
	if v.IsSet("request_timeout") {
		cfg.RequestTimeout = v.GetDuration("request_timeout")
	}
	if v.IsSet("template_dir") {
		cfg.TemplateDir = v.GetString("template_dir")
	}
}
