package config

import (
	"encoding/json"
	"os"

	"github.com/eventora/backoffice/internal/flagx"
	"github.com/eventora/backoffice/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "60s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	BackendBaseURL       string         `json:"backend_base_url"`
	DatabasePath         string         `json:"database_path"`
	RevalidationInterval timex.Duration `json:"revalidation_interval"`
	HTTPTimeout          timex.Duration `json:"http_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// comes from the -c/-config flags. When no path is given, nothing happens.
// Read or unmarshal errors panic; the intended order is
// defaults -> parseJson -> parseFlags, where later stages override earlier
// ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RevalidationInterval.Duration != 0 {
		cfg.RevalidationInterval = jc.RevalidationInterval.Duration
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}
