// Package config provides the configuration of the supercrawl CLI.
//
// A Config starts from NewConfig defaults and is layered, in order, with the
// YAML configuration file, a .env file in the working directory, SUPERCRAWL_*
// environment variables, and finally command-line flags (applied by cmd).
package config
