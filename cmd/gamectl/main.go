package main

import (
	"context"
	"os"
	"os/signal"

	"gamecatalog/backend/cmd/gamectl/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	commands.ExecuteContext(ctx)
}
