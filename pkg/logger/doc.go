// Package logger builds configured log/slog loggers.
//
// It is a thin factory: pick a level, a format (json or text), an output
// writer and optional static attributes, and get back a ready *slog.Logger.
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithAttr(slog.String("service", "newsletter")),
//	)
package logger
