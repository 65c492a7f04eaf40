package commands

import (
	"flag"
	"fmt"
)

var ConfigCmd = Config{}

// Config prints the effective configuration i.e. the configuration file
// merged with the environment and command line overrides.
type Config struct {
	command
}

func (cmd *Config) Name() string {
	return "config"
}

func (cmd *Config) Description() string {
	return "Displays the current configuration"
}

func (cmd *Config) Usage() string {
	return ""
}

func (cmd *Config) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--config <file>] config [options]\n", APP)
	fmt.Println()
	fmt.Println("  Displays the effective configuration as YAML")
	fmt.Println()

	helpOptions(cmd.FlagSet())
	fmt.Println()
}

func (cmd *Config) FlagSet() *flag.FlagSet {
	return cmd.flagset("config")
}

func (cmd *Config) Execute(args ...any) error {
	_, cfg, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	defer cmd.close()

	b, err := cfg.YAML()
	if err != nil {
		return err
	}

	fmt.Printf("%s", string(b))

	return nil
}
