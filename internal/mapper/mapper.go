// Package mapper combines raw OMDb metadata and YouTube trailer data into
// one normalized movie record.
//
// Combine is a pure function of its inputs: no I/O, no failure modes. Fields
// the upstream left absent (or set to its "N/A" sentinel) come out as nulls
// or empty lists, never as the sentinel itself — with the deliberate
// exception of the pass-through fields noted below.
package mapper

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Shimizu-Technology/movie-discovery-api/internal/models"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/omdb"
	"github.com/Shimizu-Technology/movie-discovery-api/internal/youtube"
)

var (
	yearPattern    = regexp.MustCompile(`\d{4}`)
	runtimePattern = regexp.MustCompile(`(\d+)\s*min`)
	numberPattern  = regexp.MustCompile(`\d+\.?\d*`)
)

// releaseDateLayouts are the date formats OMDb uses ("16 Jul 2010" mostly).
var releaseDateLayouts = []string{
	"02 Jan 2006",
	"2 Jan 2006",
	"2006-01-02",
}

// Combine builds the normalized movie record from an OMDb record and an
// optional trailer. A nil trailer means the lookup was skipped or found
// nothing; the result then has no trailer key at all.
func Combine(movie *omdb.Movie, trailer *youtube.Trailer) *models.NormalizedMovie {
	title := movie.Title
	if title == "" {
		title = "Unknown Title"
	}
	movieType := strings.ToLower(movie.Type)
	if movieType == "" {
		movieType = "movie"
	}

	m := &models.NormalizedMovie{
		IMDbID:      optional(movie.IMDbID),
		Title:       title,
		Year:        parseYear(movie.Year),
		ReleaseDate: parseReleaseDate(movie.Released),
		Runtime:     parseRuntime(movie.Runtime),
		Genre:       parseList(movie.Genre),
		Plot:        movie.Plot,

		Ratings:    parseRatings(movie.Ratings),
		IMDbRating: parseFloat(movie.IMDbRating),
		IMDbVotes:  parseVotes(movie.IMDbVotes),

		Director: parseList(movie.Director),
		Writer:   parseList(movie.Writer),
		Actors:   parseList(movie.Actors),

		Country:  parseList(movie.Country),
		Language: parseList(movie.Language),

		// Pass-through fields: null only when the source field is empty.
		// A literal "N/A" is kept as-is — clients already handle it and the
		// original contract never filtered these.
		Awards:     optional(movie.Awards),
		Production: optional(movie.Production),
		BoxOffice:  optional(movie.BoxOffice),
		Rated:      optional(movie.Rated),
		Website:    optional(movie.Website),

		Poster:     normalizePosterURL(movie.Poster),
		Type:       movieType,
		Metascore:  parseInt(movie.Metascore),
		DVDRelease: parseReleaseDate(movie.DVD),

		OMDbData:    movie,
		DataSources: dataSources(movie, trailer),
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}

	if trailer != nil {
		m.Trailer = mapTrailer(trailer)
	}

	return m
}

// mapTrailer converts a raw trailer hit into the embedded sub-record.
func mapTrailer(t *youtube.Trailer) *models.TrailerInfo {
	return &models.TrailerInfo{
		Available:    t.VideoID != "",
		VideoID:      t.VideoID,
		Title:        t.Title,
		Description:  t.Description,
		ThumbnailURL: t.ThumbnailURL,
		EmbedURL:     t.EmbedURL,
		WatchURL:     t.WatchURL,
		ChannelTitle: t.ChannelTitle,
		PublishedAt:  t.PublishedAt,
	}
}

// parseYear extracts the first 4-digit run from year strings like "2010",
// "2010-" or "2020-2023".
func parseYear(s string) *int {
	match := yearPattern.FindString(s)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &year
}

// parseReleaseDate converts OMDb date strings to "YYYY-MM-DD".
func parseReleaseDate(s string) *string {
	if s == "" || s == omdb.NotAvailable {
		return nil
	}
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			formatted := t.Format("2006-01-02")
			return &formatted
		}
	}
	return nil
}

// parseRuntime parses "148 min" into minutes plus an "Hh Mm" rendering.
// A runtime string with no minute count keeps only the original text.
func parseRuntime(s string) *models.Runtime {
	if s == "" || s == omdb.NotAvailable {
		return nil
	}
	match := runtimePattern.FindStringSubmatch(s)
	if match == nil {
		return &models.Runtime{Formatted: s}
	}
	minutes, err := strconv.Atoi(match[1])
	if err != nil {
		return &models.Runtime{Formatted: s}
	}
	return &models.Runtime{
		Minutes:      &minutes,
		Formatted:    s,
		HoursMinutes: strconv.Itoa(minutes/60) + "h " + strconv.Itoa(minutes%60) + "m",
	}
}

// parseList splits OMDb's comma-joined strings (genres, people, countries,
// languages) into trimmed segments.
func parseList(s string) []string {
	if s == "" || s == omdb.NotAvailable {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// parseRatings keys each ratings entry by its lowercased, underscored source
// name and attaches the 0-10 normalized value.
func parseRatings(ratings []omdb.Rating) map[string]models.RatingDetail {
	out := make(map[string]models.RatingDetail, len(ratings))
	for _, r := range ratings {
		key := strings.ToLower(strings.ReplaceAll(r.Source, " ", "_"))
		out[key] = models.RatingDetail{
			Source:     r.Source,
			Value:      r.Value,
			Normalized: normalizeRating(r.Value, key),
		}
	}
	return out
}

// normalizeRating rescales a rating value to a 0-10 scale using the
// source-specific format: IMDb "8.8/10", Rotten Tomatoes "87%", Metacritic
// "74/100". Unknown sources fall back to the first numeric substring.
func normalizeRating(value, sourceKey string) *float64 {
	if value == "" {
		return nil
	}

	switch sourceKey {
	case "internet_movie_database":
		v, err := strconv.ParseFloat(strings.TrimSuffix(value, "/10"), 64)
		if err != nil {
			return nil
		}
		return &v

	case "rotten_tomatoes":
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return nil
		}
		v := float64(pct) / 10
		return &v

	case "metacritic":
		score, err := strconv.Atoi(strings.TrimSuffix(value, "/100"))
		if err != nil {
			return nil
		}
		v := float64(score) / 10
		return &v

	default:
		match := numberPattern.FindString(value)
		if match == "" {
			return nil
		}
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil
		}
		return &v
	}
}

// parseFloat handles plain numeric strings like imdbRating "8.8".
func parseFloat(s string) *float64 {
	if s == "" || s == omdb.NotAvailable {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseInt handles plain integer strings like Metascore "74".
func parseInt(s string) *int {
	if s == "" || s == omdb.NotAvailable {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// parseVotes handles comma-grouped counts like "2,000,000".
func parseVotes(s string) *int {
	if s == "" || s == omdb.NotAvailable {
		return nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return nil
	}
	return &v
}

// normalizePosterURL upgrades OMDb's default 300px poster to the 600px
// variant the detail view wants.
func normalizePosterURL(s string) *string {
	if s == "" || s == omdb.NotAvailable {
		return nil
	}
	upgraded := strings.ReplaceAll(s, "SX300", "SX600")
	return &upgraded
}

// optional maps "" to null and keeps everything else, including "N/A".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// dataSources summarizes which upstreams contributed to the record.
func dataSources(movie *omdb.Movie, trailer *youtube.Trailer) models.DataSources {
	return models.DataSources{
		OMDb: models.OMDbSource{
			Used:        true,
			DataQuality: assessQuality(movie),
		},
		YouTube: models.YouTubeSource{
			Used:         trailer != nil,
			TrailerFound: trailer != nil && trailer.VideoID != "",
		},
	}
}

// assessQuality counts how many of the five core fields carry real values.
func assessQuality(movie *omdb.Movie) models.DataQuality {
	score := 0
	for _, field := range []string{movie.Title, movie.Year, movie.Plot, movie.Director, movie.Actors} {
		if field != "" && field != omdb.NotAvailable {
			score++
		}
	}
	switch {
	case score >= 4:
		return models.QualityHigh
	case score >= 2:
		return models.QualityMedium
	default:
		return models.QualityLow
	}
}
