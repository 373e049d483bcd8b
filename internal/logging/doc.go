// Package logging provides structured logging for the codec and its tools.
//
// The Logger interface takes a message and alternating key-value pairs. The
// implementation is backed by hclog and writes text or JSON:
//
//	logger := logging.New(logging.Config{
//	    Level:  "debug",
//	    Format: "json",
//	    Output: "stderr",
//	})
//	logger.Info("message decoded", "message_id", 456, "op", "ExtendedResponse")
//
// Loggers derived with WithFields or WithSessionID carry their fields on
// every entry. Decoders tag their output with a session ID so interleaved
// streams can be told apart:
//
//	log := logger.WithSessionID(logging.GenerateSessionID())
//
// For testing, use a no-op logger:
//
//	logger := logging.NewNop()
package logging
