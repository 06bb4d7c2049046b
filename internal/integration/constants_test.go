package integration_test

import (
	"time"
)

const (
	// User related constants
	TestUserId    = "6740a1f2c3d4e5f601234567"
	TestUserName  = "John Doe"
	TestUserEmail = "test@example.com"

	// Movie related constants
	TestMovieId          = "6740a1f2c3d4e5f676543210"
	TestMovieTitle       = "Test Movie"
	TestMovieDescription = "A test movie description."
	TestMoviePosterUrl   = "https://example.com/poster.jpg"

	// Showing related constants
	TestShowDate = "2024-12-01"
	TestShowTime = "18:30"
)

var (
	TestMovieReleaseDate = time.Now().Truncate(24 * time.Hour).Format("2006-01-02")
)
