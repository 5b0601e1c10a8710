// Package config defines the application configuration structure and its
// loading from environment variables and optional config files.
package config
