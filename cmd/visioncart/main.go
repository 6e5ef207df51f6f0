package main

import (
	"context"
	"time"

	"github.com/niksmo/visioncart/config"
	"github.com/niksmo/visioncart/internal/app"
	"github.com/niksmo/visioncart/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	if cfg.UI == config.UIHTTP {
		cfg.Print()
	}

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
