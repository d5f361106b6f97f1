// Package slog provides logging decorators for sentimeter interfaces.
// Each decorator logs the operation with its size and duration and
// delegates to the wrapped implementation.
package slog
