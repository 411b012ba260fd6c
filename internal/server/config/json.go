package config

import (
	"encoding/json"
	"os"

	"github.com/dpetrovs/authgate/internal/flagx"
	"github.com/dpetrovs/authgate/internal/timex"
)

// JsonConfig is the DTO for reading JSON configuration files. It uses
// timex.Duration for interval fields, which allows parsing both string
// values such as "15m" and integer nanoseconds. After unmarshalling, its
// fields are copied into the runtime Config.
type JsonConfig struct {
	Address                      string         `json:"address"`
	DatabaseDSN                  string         `json:"database_dsn"`
	RedisAddr                    string         `json:"redis_addr"`
	InMemory                     bool           `json:"inmemory"`
	SecretKey                    string         `json:"secret_key"`
	SigningAlgorithm             string         `json:"signing_algorithm"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	DefaultProjectID             string         `json:"default_project_id"`
}

// parseJson overlays configuration values from a JSON file into the provided
// Config. The file path comes from the -c/-config flags; when neither is
// given, no file is loaded.
//
// The DTO is prefilled from the current Config before unmarshalling, so keys
// absent from the file keep whatever earlier layers set. An unreadable file
// or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{
		Address:                      config.Address,
		DatabaseDSN:                  config.DatabaseDSN,
		RedisAddr:                    config.RedisAddr,
		InMemory:                     config.InMemory,
		SecretKey:                    config.SecretKey,
		SigningAlgorithm:             config.SigningAlgorithm,
		AccessTokenValidityDuration:  timex.Duration{Duration: config.AccessTokenValidityDuration},
		RefreshTokenValidityDuration: timex.Duration{Duration: config.RefreshTokenValidityDuration},
		DefaultProjectID:             config.DefaultProjectID,
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.Address = c.Address
	config.DatabaseDSN = c.DatabaseDSN
	config.RedisAddr = c.RedisAddr
	config.InMemory = c.InMemory
	config.SecretKey = c.SecretKey
	config.SigningAlgorithm = c.SigningAlgorithm
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	config.DefaultProjectID = c.DefaultProjectID
}
