// Package logging provides structured logging for the txed CLI using slog.
//
// Loggers write either a colorized, human-oriented text format (when the
// output is a terminal) or JSON. Values that look like credentials are masked
// by the text handler, since buffer lines often come from config files.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("saved", "path", "/etc/hosts")
//
// # Context
//
// Commands carry their logger in a context.Context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("loading")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
