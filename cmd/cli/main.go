package main

import (
	"context"

	"github.com/dmitrijs2005/lockbox/internal/client/cli"
	"github.com/dmitrijs2005/lockbox/internal/client/config"
)

func main() {
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)
	app.Run(context.Background())
}
