package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var theLog = newLog(os.Getenv("YDOC_LOG_LEVEL"))

func newLog(level string) *slog.Logger {
	lvl := slog.LevelWarn
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			fmt.Fprintf(os.Stderr, "invalid YDOC_LOG_LEVEL %q: %v\n", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
