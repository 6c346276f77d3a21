package main

import (
	"fmt"
	"os"

	"github.com/cumaze/registro-consorcio/core"
	logsvc "github.com/cumaze/registro-consorcio/services/logger"
)

func main() {
	conf := core.NewConfig()

	logger, err := logsvc.New(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cli := newCommandLine(conf, logger, os.Stdout)
	if err = cli.run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
