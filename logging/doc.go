// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package logging configures the process-wide slog handler.

Call Setup once from main. Output is colored (tint) when stderr is a
terminal and JSON otherwise; the level comes from LOG_LEVEL (debug, info,
warn, error).
*/
package logging
