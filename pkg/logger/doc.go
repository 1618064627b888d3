// Package logger provides structured logging for devscout.
//
// It wraps zerolog behind the Logger interface so that library packages
// (sources, aggregator, replies, backend) can take a Logger in their
// constructors and tests can substitute NewTestLogger or NewNopLogger.
//
//	if err := logger.Initialize(&cfg.Logging); err != nil {
//	    return err
//	}
//	log := logger.GetLogger().WithField("component", "aggregator")
//	log.InfoWithFields("Run completed", map[string]interface{}{
//	    "records": 42,
//	})
//
// Console output is colored and goes to stderr. Setting Logging.File adds a
// JSON-lines copy of every event in that file.
package logger
