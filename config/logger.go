package config

import (
	"os"

	"go.uber.org/zap"
)

var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

func InitLogger() {
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	SLog = Log.Sugar()
}

func init() {
	// Safe defaults so packages can log before main wires things up.
	if Log == nil {
		InitLogger()
	}
}
