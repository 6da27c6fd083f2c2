package csvschema

import "github.com/at-ishikawa/keepsake/internal/record"

var Vocabulary = Schema[record.Vocabulary]{
	Name:       "vocabulary",
	Stem:       "japanese",
	Title:      "Vocabulary",
	MinColumns: 4,
	Key:        record.VocabularyKey,
	Columns: []Column[record.Vocabulary]{
		idColumn(func(v *record.Vocabulary) *string { return &v.ID }),
		textColumn("Word", func(v *record.Vocabulary) *string { return &v.Word }),
		textColumn("Reading", func(v *record.Vocabulary) *string { return &v.Reading }),
		textColumn("Meaning", func(v *record.Vocabulary) *string { return &v.Meaning }),
		textColumn("Meaning JP", func(v *record.Vocabulary) *string { return &v.MeaningJP }),
		textColumn("Example Sentence", func(v *record.Vocabulary) *string { return &v.ExampleSentence }),
		textColumn("Example Translation", func(v *record.Vocabulary) *string { return &v.ExampleTranslation }),
		addedAtColumn(func(v *record.Vocabulary) *int64 { return &v.AddedAt }),
	},
}

var TravelSpot = Schema[record.TravelSpot]{
	Name:       "travel",
	Stem:       "travel",
	Title:      "Travel Spots",
	MinColumns: 4,
	Key:        record.TravelSpotKey,
	Columns: []Column[record.TravelSpot]{
		idColumn(func(s *record.TravelSpot) *string { return &s.ID }),
		textColumn("Name", func(s *record.TravelSpot) *string { return &s.Name }),
		textColumn("Address", func(s *record.TravelSpot) *string { return &s.Address }),
		enumColumn("Status", func(s *record.TravelSpot) *record.TravelStatus { return &s.Status }, record.ParseTravelStatus),
		textColumn("Google Maps URI", func(s *record.TravelSpot) *string { return &s.GoogleMapsURI }),
		ratingColumn("Rating", func(s *record.TravelSpot) **float64 { return &s.Rating }),
		textColumn("User Notes", func(s *record.TravelSpot) *string { return &s.UserNotes }),
		addedAtColumn(func(s *record.TravelSpot) *int64 { return &s.AddedAt }),
	},
}

var Song = Schema[record.Song]{
	Name:       "music",
	Stem:       "music",
	Title:      "Music",
	MinColumns: 4,
	Columns: []Column[record.Song]{
		idColumn(func(s *record.Song) *string { return &s.ID }),
		textColumn("Artist", func(s *record.Song) *string { return &s.Artist }),
		textColumn("Song", func(s *record.Song) *string { return &s.Song }),
		textColumn("URL", func(s *record.Song) *string { return &s.URL }),
		addedAtColumn(func(s *record.Song) *int64 { return &s.AddedAt }),
	},
}

var MediaItem = Schema[record.MediaItem]{
	Name:       "media",
	Stem:       "media",
	Title:      "Media",
	MinColumns: 4,
	Columns: []Column[record.MediaItem]{
		idColumn(func(m *record.MediaItem) *string { return &m.ID }),
		enumColumn("Type", func(m *record.MediaItem) *record.MediaType { return &m.Type }, record.ParseMediaType),
		textColumn("Title", func(m *record.MediaItem) *string { return &m.Title }),
		enumColumn("Status", func(m *record.MediaItem) *record.MediaStatus { return &m.Status }, record.ParseMediaStatus),
		textColumn("Link", func(m *record.MediaItem) *string { return &m.Link }),
		ratingColumn("Rating", func(m *record.MediaItem) **float64 { return &m.Rating }),
		textColumn("Notes", func(m *record.MediaItem) *string { return &m.Notes }),
		addedAtColumn(func(m *record.MediaItem) *int64 { return &m.AddedAt }),
	},
}

var ExperienceItem = Schema[record.ExperienceItem]{
	Name:       "experience",
	Stem:       "experience",
	Title:      "Experience",
	MinColumns: 5,
	Columns: []Column[record.ExperienceItem]{
		idColumn(func(e *record.ExperienceItem) *string { return &e.ID }),
		textColumn("Title", func(e *record.ExperienceItem) *string { return &e.Title }),
		textColumn("Company", func(e *record.ExperienceItem) *string { return &e.Company }),
		textColumn("Period", func(e *record.ExperienceItem) *string { return &e.Period }),
		textColumn("Description", func(e *record.ExperienceItem) *string { return &e.Description }),
		listColumn("Tags", TagSeparator, func(e *record.ExperienceItem) *[]string { return &e.Tags }),
	},
}

var DiaryEntry = Schema[record.DiaryEntry]{
	Name:       "diary",
	Stem:       "diary",
	Title:      "Diary",
	MinColumns: 3,
	Columns: []Column[record.DiaryEntry]{
		idColumn(func(d *record.DiaryEntry) *string { return &d.ID }),
		textColumn("Date", func(d *record.DiaryEntry) *string { return &d.Date }),
		textColumn("Content", func(d *record.DiaryEntry) *string { return &d.Content }),
		textColumn("Mood", func(d *record.DiaryEntry) *string { return &d.Mood }),
		blobColumn("Images", func(d *record.DiaryEntry) *[]string { return &d.Images }),
		addedAtColumn(func(d *record.DiaryEntry) *int64 { return &d.AddedAt }),
	},
}
