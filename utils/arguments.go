package utils

import "flag"

// CommandLineArguments holds the parsed startup flags. The fields are
// pointers because flag registration happens before flag.Parse runs.
type CommandLineArguments struct {
	ConfigFile       *string
	UseLocalDatabase *bool
	DevelopmentMode  *bool
}

func ParseArguments() *CommandLineArguments {
	cmdArgs := &CommandLineArguments{
		flag.String("config", "./config.default.yml", "The configuration file to load"),
		flag.Bool("sqlite", false, "Run against a local SQLite file instead of Postgres"),
		flag.Bool("dev", false, "Enable development mode (verbose logging, debug router)"),
	}
	flag.Parse()

	return cmdArgs
}
