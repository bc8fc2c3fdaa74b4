package gpdf

import "io"

// searchConfig holds internal configuration for a Searcher.
type searchConfig struct {
	window int
	open   Opener
	warn   io.Writer
	emit   func(MatchRecord)
}

func defaultSearchConfig() searchConfig {
	return searchConfig{
		window: DefaultContextWindow,
		open:   Open,
		warn:   io.Discard,
	}
}

// Option configures a [Searcher].
type Option func(*searchConfig)

// WithContextWindow sets the number of bytes of context captured on each
// side of a match. Defaults to [DefaultContextWindow].
func WithContextWindow(n int) Option {
	return func(c *searchConfig) {
		if n > 0 {
			c.window = n
		}
	}
}

// WithOpener replaces the document backend used to open input files.
// By default files are opened with [Open].
func WithOpener(open Opener) Option {
	return func(c *searchConfig) {
		if open != nil {
			c.open = open
		}
	}
}

// WithWarnWriter directs per-file warnings (unreadable documents) to w.
// Warnings are discarded by default.
func WithWarnWriter(w io.Writer) Option {
	return func(c *searchConfig) {
		if w != nil {
			c.warn = w
		}
	}
}

// WithMatchHandler registers fn to be called for each match as it is
// found, while the file holding it is being processed. The record is
// also aggregated into the returned [ResultSet] as usual.
func WithMatchHandler(fn func(MatchRecord)) Option {
	return func(c *searchConfig) {
		c.emit = fn
	}
}
