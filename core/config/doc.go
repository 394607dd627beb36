// Package config provides configuration management for the quiz manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key, sync batch limit)
//   - Database: MySQL/SQLite connection details
//   - Storage: S3/MinIO credentials and the question image bucket
//   - Log: Logging level and format
//
// Defaults come from `default:` struct tags, bound through reflection so a
// new setting only needs its tag to participate.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
