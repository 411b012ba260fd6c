package config

import (
	"flag"
	"os"
	"time"

	"github.com/dpetrovs/authgate/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      HTTP bind address (e.g., ":8080")
//	-d string      PostgreSQL DSN
//	-redis string  Redis address for refresh tokens
//	-inmemory      keep both stores in process memory
//	-s string      JWT HMAC secret key
//	-alg string    JWT signing algorithm (HMAC family)
//	-t int         access token validity, minutes
//	-r int         refresh token validity, days
//	-p string      project assigned to requests without a project_id
//
// os.Args is first filtered down to the flags handled here using
// flagx.FilterArgs, avoiding collisions with flags owned by other packages.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-redis", "-inmemory", "-s", "-alg", "-t", "-r", "-p",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Address, "a", config.Address, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "redis address for refresh tokens")
	fs.BoolVar(&config.InMemory, "inmemory", config.InMemory, "keep stores in process memory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT signing secret")
	fs.StringVar(&config.SigningAlgorithm, "alg", config.SigningAlgorithm, "JWT signing algorithm")
	fs.StringVar(&config.DefaultProjectID, "p", config.DefaultProjectID, "default project id")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTokenValidity := fs.Int("r", int(config.RefreshTokenValidityDuration.Hours()/24), "refresh token validity (in days)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations are only overwritten when the flag was actually given, so a
	// finer-grained value from the env or JSON layers survives the int round
	// trip.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidity) * 24 * time.Hour
		}
	})
}
