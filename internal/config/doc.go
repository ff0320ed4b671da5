// Package config defines the application configuration structure and its
// loader. Configuration is read from environment variables (TASKDECK_ prefix)
// and an optional config.yaml, then validated before the application starts.
package config
