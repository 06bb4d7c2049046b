package main

import (
	"log/slog"
	"os"

	"github.com/metinatakli/movie-booking-service/internal/app"
)

func main() {
	err := app.Run(os.Args[1:])
	if err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}
