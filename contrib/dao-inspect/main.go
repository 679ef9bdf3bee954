package main

import (
	"fmt"
	"os"

	"github.com/spikeekips/mitum-dao/launch/cmds"
)

var Version = "v0.0.0-dev"

func main() {
	flags := cmds.NewDAOInspectCommand()

	kctx, err := cmds.Context(os.Args[1:], &flags)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %+v\n", err)

		os.Exit(1)
	}

	if kctx.Command() == "version" {
		_, _ = fmt.Fprintln(os.Stdout, Version)

		os.Exit(0)
	}

	kctx.FatalIfErrorf(kctx.Run())

	os.Exit(0)
}
