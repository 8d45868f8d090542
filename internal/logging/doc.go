// Package logging provides structured, context-aware logging on top of zap.
//
// Loggers are created from a Config and carry correlation fields pulled from
// the context (currently the run ID) on every call:
//
//	logger, err := logging.NewLoggerTo(logging.NewDefaultConfig(), zapcore.Lock(os.Stderr))
//	ctx = logging.WithRunID(ctx, uuid.NewString())
//	logger.Info(ctx, "scan complete", zap.Int("loops", n))
//
// Tests use NewTestLogger, which records entries in memory for assertions.
package logging
