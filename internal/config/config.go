// Package config defines the CLI surface shared by the optionsgen commands.
package config

import "github.com/tenowg/optionsgen/internal/cmd"

// LogConfig holds the logging flags shared by every command.
type LogConfig struct {
	Level string `help:"Log level: trace, debug, info, warn, or error" enum:"trace,debug,info,warn,error" default:"info" env:"OPTIONSGEN_LOG_LEVEL"`
	File  string `help:"Write logs to this file instead of the console" env:"OPTIONSGEN_LOG_FILE"`
}

// CLI is the root command structure parsed by Kong.
type CLI struct {
	Log    LogConfig `embed:"" prefix:"log."`
	Config string    `help:"Path to a configuration file" env:"OPTIONSGEN_CONFIG"`

	Generate  cmd.Generate      `cmd:"" help:"Scan a module and generate descriptor tables"`
	Inspect   cmd.Inspect       `cmd:"" help:"Scan a module and print the synthesized metadata"`
	ConfigCmd cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file helpers"`
}
