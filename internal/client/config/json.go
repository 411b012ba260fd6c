package config

import (
	"encoding/json"
	"os"

	"github.com/dpetrovs/authgate/internal/flagx"
	"github.com/dpetrovs/authgate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like "5s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerAddr     string         `json:"server_addr"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c/-config flags; when neither is given, no file is loaded.
//
// The DTO is prefilled from the current Config before unmarshalling, so keys
// absent from the file keep whatever earlier layers set. An unreadable file
// or invalid JSON panics.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
	if jsonConfigFile == "" {
		return
	}

	jc := &JsonConfig{
		ServerAddr:     cfg.ServerAddr,
		RequestTimeout: timex.Duration{Duration: cfg.RequestTimeout},
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, jc); err != nil {
		panic(err)
	}

	cfg.ServerAddr = jc.ServerAddr
	cfg.RequestTimeout = jc.RequestTimeout.Duration
}
