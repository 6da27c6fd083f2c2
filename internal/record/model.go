// Package record provides the record kinds kept by keepsake and the merge policy
// applied when imported records join an existing list.
package record

// Vocabulary is a learned Japanese word.
type Vocabulary struct {
	ID                 string `json:"id"`
	Word               string `json:"word"`
	Reading            string `json:"reading"`
	Meaning            string `json:"meaning"`
	MeaningJP          string `json:"meaningJP"`
	ExampleSentence    string `json:"exampleSentence"`
	ExampleTranslation string `json:"exampleTranslation"`
	AddedAt            int64  `json:"addedAt"`
}

// TravelSpot is a place the user has visited or wants to visit.
type TravelSpot struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Address       string       `json:"address"`
	Status        TravelStatus `json:"status"`
	GoogleMapsURI string       `json:"googleMapsUri"`
	Rating        *float64     `json:"rating,omitempty"`
	UserNotes     string       `json:"userNotes,omitempty"`
	AddedAt       int64        `json:"addedAt"`
}

// Song is a saved song link.
type Song struct {
	ID      string `json:"id"`
	Artist  string `json:"artist"`
	Song    string `json:"song"`
	URL     string `json:"url"`
	AddedAt int64  `json:"addedAt"`
}

// MediaItem is a movie, series, book or game on the user's list.
type MediaItem struct {
	ID      string      `json:"id"`
	Type    MediaType   `json:"type"`
	Title   string      `json:"title"`
	Status  MediaStatus `json:"status"`
	Link    string      `json:"link,omitempty"`
	Rating  *float64    `json:"rating,omitempty"`
	Notes   string      `json:"notes,omitempty"`
	AddedAt int64       `json:"addedAt"`
}

// ExperienceItem is one entry of the user's work history.
type ExperienceItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Period      string   `json:"period"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// DiaryEntry is a dated diary page. Images hold base64 encoded pictures.
type DiaryEntry struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	Content string   `json:"content"`
	Mood    string   `json:"mood,omitempty"`
	Images  []string `json:"images"`
	AddedAt int64    `json:"addedAt"`
}

// Record is implemented by every record kind.
type Record interface {
	Vocabulary | TravelSpot | Song | MediaItem | ExperienceItem | DiaryEntry
}

// Identity returns the id of a record.
func Identity[T Record](r T) string {
	switch v := any(r).(type) {
	case Vocabulary:
		return v.ID
	case TravelSpot:
		return v.ID
	case Song:
		return v.ID
	case MediaItem:
		return v.ID
	case ExperienceItem:
		return v.ID
	case DiaryEntry:
		return v.ID
	}
	return ""
}

// WithIdentity returns a copy of r carrying id.
func WithIdentity[T Record](r T, id string) T {
	switch v := any(&r).(type) {
	case *Vocabulary:
		v.ID = id
	case *TravelSpot:
		v.ID = id
	case *Song:
		v.ID = id
	case *MediaItem:
		v.ID = id
	case *ExperienceItem:
		v.ID = id
	case *DiaryEntry:
		v.ID = id
	}
	return r
}
