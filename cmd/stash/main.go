package main

import (
	"fmt"
	"os"
	"stash/internal/di"
	"stash/internal/structures"

	flag "github.com/spf13/pflag"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVarP(&flags.ConfigPath, "config", "c", "config/stash.yaml", "path to the YAML config file")
	flag.BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "stash: %s\n", err)
		os.Exit(1)
	}
}
