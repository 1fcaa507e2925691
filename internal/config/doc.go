// Package config loads server, database, auth and seed settings from an
// optional config file and TASKMGR_-prefixed environment variables, applies
// defaults and validates the result.
package config
