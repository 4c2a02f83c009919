package config

import (
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
)

func InitializeLogger(cfg *structs.Config) *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(
		gecho.WithLogLevel(gecho.ParseLogLevel(LogLevel(cfg))),
		gecho.WithShowCaller(!IsProduction(cfg)),
	))
}
