package server

import "strconv"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxSyncBatch caps the number of quizzes accepted in one sync request.
	MaxSyncBatch int `mapstructure:"max_sync_batch" default:"500"`
}

// Validate checks that the configured values are usable.
func (c Config) Validate() bool {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return false
	}
	return c.MaxSyncBatch > 0
}
