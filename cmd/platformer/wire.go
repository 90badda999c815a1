//go:build wireinject
// +build wireinject

package main

import "github.com/google/wire"

func initializeApp(opts Options) (*App, func(), error) {
	wire.Build(provideLogger, provideConfig, newApp)
	return nil, nil, nil
}
