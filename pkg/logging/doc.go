// Package logging configures log/slog for the sirius CLI and the mock service.
//
// Every logger writes JSON to stderr and tags records with the module name and
// build version, so CLI output on stdout stays machine readable while
// diagnostics go elsewhere.
//
// # Levels
//
// ParseLogLevel accepts debug, info, warn (or warning) and error in any case.
// Unknown values fall back to info. At debug level records carry their source
// location.
//
// # Usage
//
// The mock service takes its level from LOG_LEVEL:
//
//	logging.SetDefaultStructuredLogger("sirius-mock", version)
//	slog.Info("starting", "port", cfg.Port)
//
// The CLI resolves the level from its --log-level flag, which itself falls back
// to LOG_LEVEL, and defaults to warn so that only failures reach the terminal:
//
//	logging.SetDefaultStructuredLoggerWithLevel("sirius", version, cmd.String("log-level"))
//
// The transport logs each call at debug level:
//
//	LOG_LEVEL=debug sirius features list -p demo
//
//	{"time":"2025-06-02T09:14:07.311Z","level":"DEBUG","msg":"received response",
//	 "module":"sirius","version":"v0.3.0","operation":"getAlignedFeatures",
//	 "method":"GET","path":"/api/projects/demo/aligned-features",
//	 "requestId":"6f0c...","status":200,"bytes":5120,"duration":4103021}
//
// NewLogLogger returns a *log.Logger writing the same JSON records, for APIs
// such as http.Server.ErrorLog.
package logging
