package app

import (
	"net/http"
	"time"

	"github.com/metinatakli/movie-booking-service/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"

	dateLayout = "2006-01-02"
)

type MovieStatus string

const (
	ComingSoon MovieStatus = "COMING_SOON"
	NowShowing MovieStatus = "NOW_SHOWING"
)

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Sort     *string `validate:"omitempty,movie_sort"`
	Term     *string `validate:"omitempty,max=50"`
}

type MovieSummary struct {
	Id          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	PosterUrl   string      `json:"posterUrl"`
	ReleaseDate string      `json:"releaseDate"`
	Status      MovieStatus `json:"status"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata *Metadata      `json:"metadata"`
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	var params GetMoviesParams
	var err error

	params.Page, err = readInt(qs, "page")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params.PageSize, err = readInt(qs, "pageSize")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params.Sort = readString(qs, "sort")
	params.Term = readString(qs, "term")

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []MovieSummary {
	summaries := make([]MovieSummary, len(movies))
	today := time.Now().Truncate(24 * time.Hour)

	for i, movie := range movies {
		summary := toMovieSummary(movie)

		if movie.ReleaseDate.After(today) {
			summary.Status = ComingSoon
		} else {
			summary.Status = NowShowing
		}

		summaries[i] = summary
	}

	return summaries
}

func toMovieSummary(movie *domain.Movie) MovieSummary {
	return MovieSummary{
		Id:          movie.ID,
		Name:        movie.Title,
		Description: movie.Description,
		PosterUrl:   movie.PosterUrl,
		ReleaseDate: movie.ReleaseDate.Format(dateLayout),
	}
}

func toApiMetadata(metadata *domain.Metadata) *Metadata {
	if metadata == nil {
		return nil
	}

	return &Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
