// Package server holds the HTTP server configuration.
//
// The main application entry point handles server startup; this package only
// defines the configuration structure and its validation.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting write
// endpoints, and the maximum sync batch size.
//
// # Usage
//
// This package is primarily used by core/config to embed server settings and
// by the quiz handler to enforce the sync batch limit.
package server
