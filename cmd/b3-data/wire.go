//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"b3-data/internal/app"
	"b3-data/internal/provider"
	"b3-data/internal/provider/yahoo"
)

// InitializeApp builds App (Config + Source + Runner) via Wire.
// Caller must call a.Source.Close() when done.
func InitializeApp() (*App, error) {
	wire.Build(
		app.ProvideConfig,
		app.ProvideSource,
		wire.Bind(new(provider.BarSource), new(*yahoo.Client)),
		app.ProvideSaver,
		app.ProvideStores,
		app.ProvideWriter,
		app.ProvideOrchestrator,
		wire.Struct(new(App), "Config", "Source", "Runner"),
	)
	return nil, nil
}
