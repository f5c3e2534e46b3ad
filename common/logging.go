package common

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the structured logger used for buffer pool
// diagnostics: page loads, new pages, cache-out (eviction) events, and
// failed disk I/O. Pool saturation is not logged. When cfg.LogPath is
// empty it logs to stderr; otherwise it rotates through lumberjack the
// way a long-running pool's diagnostic log should.
func NewLogger(cfg Config) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var sink zapcore.WriteSyncer
	if cfg.LogPath == "" {
		sink = zapcore.Lock(os.Stderr)
	} else {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    32, // megabytes
			MaxBackups: 3,
			MaxAge:     7, // days
		})
	}

	core := zapcore.NewCore(encoder, sink, zap.DebugLevel)
	return zap.New(core), nil
}
