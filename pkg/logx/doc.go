// Package logx configures homeworkbot's structured logging.
//
// This repo uses a small wrapper (logx.Logger) on top of zerolog to keep:
//   - Console output readable (short timestamp + short caller)
//   - File output JSON-structured and rotated (lumberjack)
//
// There is no chat sink: log lines about failed Telegram sends never go back
// through Telegram.
package logx
