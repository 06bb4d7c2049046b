package integration_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-booking-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE bookings, movies, users CASCADE")
	require.NoError(t, err)
}

func truncateMovies(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE movies CASCADE")
	require.NoError(t, err)
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err)
}

func defaultTestUser() domain.User {
	return domain.User{
		ID:    TestUserId,
		Name:  TestUserName,
		Email: TestUserEmail,
	}
}

func insertTestUser(t testing.TB, db *pgxpool.Pool, user domain.User) {
	_, err := db.Exec(context.Background(),
		`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
		user.ID, user.Name, user.Email)
	require.NoError(t, err)
}

func defaultTestMovie() domain.Movie {
	releaseDate, _ := time.Parse("2006-01-02", TestMovieReleaseDate)

	return domain.Movie{
		ID:          TestMovieId,
		Title:       TestMovieTitle,
		Description: TestMovieDescription,
		PosterUrl:   TestMoviePosterUrl,
		ReleaseDate: releaseDate,
	}
}

func insertTestMovie(t testing.TB, db *pgxpool.Pool, movie domain.Movie) {
	_, err := db.Exec(context.Background(),
		`INSERT INTO movies (id, title, description, release_date, poster_url) VALUES ($1, $2, $3, $4, $5)`,
		movie.ID, movie.Title, movie.Description, movie.ReleaseDate, movie.PosterUrl)
	require.NoError(t, err)
}

func insertTestBooking(t testing.TB, db *pgxpool.Pool, id string, seats []int) {
	_, err := db.Exec(context.Background(),
		`INSERT INTO bookings (id, user_id, movie_id, show_date, show_time, seats, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, 10)`,
		id, TestUserId, TestMovieId, TestShowDate, TestShowTime, seats)
	require.NoError(t, err)
}

func countBookings(t testing.TB, db *pgxpool.Pool) int {
	var count int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM bookings").Scan(&count)
	require.NoError(t, err)

	return count
}
