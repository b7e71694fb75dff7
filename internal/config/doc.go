// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation,
// which is how database credentials reach the loader (DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD, DB_NAME in configs/loader.example.yaml).
package config
