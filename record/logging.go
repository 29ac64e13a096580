package record

import "log/slog"

// LogHooks returns hooks that log every transition and allow it. Combine
// with Hooks.Then to audit a stricter hook set.
func LogHooks(logger *slog.Logger) Hooks {
	if logger == nil {
		logger = slog.Default()
	}
	return Hooks{
		Insert: func(key string, value any) error {
			logger.Info("record insert", "key", key, "value", value)
			return nil
		},
		Replace: func(key string, old, new any) error {
			logger.Info("record replace", "key", key, "old", old, "new", new)
			return nil
		},
		Delete: func(key string, value any) error {
			logger.Info("record delete", "key", key, "value", value)
			return nil
		},
	}
}
