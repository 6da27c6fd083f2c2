package record

import "strings"

// TravelStatus tells whether a travel spot was already visited.
type TravelStatus string

const (
	TravelStatusWantToGo TravelStatus = "WANT_TO_GO"
	TravelStatusVisited  TravelStatus = "VISITED"
)

// Spreadsheets edited by hand use localized labels for the status column.
var travelStatusAliases = map[string]TravelStatus{
	"WANT_TO_GO": TravelStatusWantToGo,
	"want to go": TravelStatusWantToGo,
	"想去":         TravelStatusWantToGo,
	"行きたい":       TravelStatusWantToGo,

	"VISITED": TravelStatusVisited,
	"visited": TravelStatusVisited,
	"Visited": TravelStatusVisited,
	"已去":      TravelStatusVisited,
	"去过":      TravelStatusVisited,
	"去過":      TravelStatusVisited,
	"行った":     TravelStatusVisited,
	"訪問済み":    TravelStatusVisited,
	"訪れた":     TravelStatusVisited,
}

// ParseTravelStatus maps a cell to a status, falling back to TravelStatusWantToGo.
func ParseTravelStatus(s string) TravelStatus {
	if status, ok := travelStatusAliases[strings.TrimSpace(s)]; ok {
		return status
	}
	return TravelStatusWantToGo
}

// MediaType is the kind of a media item.
type MediaType string

const (
	MediaTypeMovie MediaType = "MOVIE"
	MediaTypeTV    MediaType = "TV"
	MediaTypeAnime MediaType = "ANIME"
	MediaTypeBook  MediaType = "BOOK"
	MediaTypeGame  MediaType = "GAME"
)

var allMediaTypes = []MediaType{MediaTypeMovie, MediaTypeTV, MediaTypeAnime, MediaTypeBook, MediaTypeGame}

// ParseMediaType maps a cell to a media type, falling back to MediaTypeMovie.
func ParseMediaType(s string) MediaType {
	s = strings.TrimSpace(s)
	for _, t := range allMediaTypes {
		if s == string(t) {
			return t
		}
	}
	return MediaTypeMovie
}

// MediaStatus is the progress of a media item.
type MediaStatus string

const (
	MediaStatusPlanned    MediaStatus = "PLANNED"
	MediaStatusInProgress MediaStatus = "IN_PROGRESS"
	MediaStatusCompleted  MediaStatus = "COMPLETED"
	MediaStatusDropped    MediaStatus = "DROPPED"
)

var allMediaStatuses = []MediaStatus{MediaStatusPlanned, MediaStatusInProgress, MediaStatusCompleted, MediaStatusDropped}

// ParseMediaStatus maps a cell to a media status, falling back to MediaStatusPlanned.
func ParseMediaStatus(s string) MediaStatus {
	s = strings.TrimSpace(s)
	for _, status := range allMediaStatuses {
		if s == string(status) {
			return status
		}
	}
	return MediaStatusPlanned
}
