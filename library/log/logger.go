// Package log is a logging package that provides functions to log messages.
package log

import (
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
)

// Logger is the shared process logger.
//
// It writes to stderr because stdout is reserved for the stdio MCP transport.
var Logger logSDK.Logger

func init() {
	var err error
	if Logger, err = newLogger(); err != nil {
		logSDK.Shared.Panic("new logger", zap.Error(err))
	}
}

func newLogger() (logSDK.Logger, error) {
	return logSDK.New(
		logSDK.WithName("miridev"),
		logSDK.WithEncoding(logSDK.EncodingConsole),
		logSDK.WithLevel(logSDK.LevelInfo),
		logSDK.WithOutputPaths([]string{"stderr"}),
	)
}
