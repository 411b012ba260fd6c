package main

import (
	"context"
	"log"
	"os"

	"github.com/dpetrovs/authgate/internal/buildinfo"
	"github.com/dpetrovs/authgate/internal/client/cli"
	"github.com/dpetrovs/authgate/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
