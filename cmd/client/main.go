package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/rememberme/internal/client/cli"
	"github.com/dmitrijs2005/rememberme/internal/client/config"
	"github.com/dmitrijs2005/rememberme/internal/flagx"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg, os.Stdout)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	args := flagx.Positional(os.Args[1:], []string{"-a", "-n", "-s", "-t", "-k", "-c", "-config"})
	if err := app.Run(ctx, args); err != nil {
		log.Printf("%v", err)
		app.Close()
		os.Exit(1)
	}

}
