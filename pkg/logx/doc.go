// Package logx provides structured logging for classbell.
//
// It wraps zerolog behind a small Logger type so components depend on a
// stable API while sinks (console, JSON file) and levels can be swapped
// at runtime via Service.Apply.
package logx
