// Package config handles API key resolution and YAML configuration loading
// with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
package config
