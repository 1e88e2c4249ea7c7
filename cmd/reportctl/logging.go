package main

import (
	"fmt"
	"log/slog"

	"github.com/sitcouncil/councilreports/pkg/logging"
)

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	logging.Setup(l)
	return nil
}
