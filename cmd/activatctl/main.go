package main

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/fang"

	"github.com/comitanigiacomo/activat-sync-engine/internal/bootstrap"
	"github.com/comitanigiacomo/activat-sync-engine/internal/config"
)

func main() {
	config.LoadDotEnv()

	cmd := newRootCmd(func(ctx context.Context) (*bootstrap.Store, error) {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		time.Local = loc
		return bootstrap.OpenStore(ctx, cfg)
	})

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}
