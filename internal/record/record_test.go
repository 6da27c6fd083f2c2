package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTravelStatus(t *testing.T) {
	tests := []struct {
		input string
		want  TravelStatus
	}{
		{input: "VISITED", want: TravelStatusVisited},
		{input: "visited", want: TravelStatusVisited},
		{input: " Visited ", want: TravelStatusVisited},
		{input: "已去", want: TravelStatusVisited},
		{input: "去过", want: TravelStatusVisited},
		{input: "行った", want: TravelStatusVisited},
		{input: "WANT_TO_GO", want: TravelStatusWantToGo},
		{input: "行きたい", want: TravelStatusWantToGo},
		{input: "unknown", want: TravelStatusWantToGo},
		{input: "", want: TravelStatusWantToGo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTravelStatus(tt.input))
		})
	}
}

func TestParseMediaEnums(t *testing.T) {
	assert.Equal(t, MediaTypeBook, ParseMediaType("BOOK"))
	assert.Equal(t, MediaTypeMovie, ParseMediaType("podcast"))
	assert.Equal(t, MediaTypeMovie, ParseMediaType(""))

	assert.Equal(t, MediaStatusCompleted, ParseMediaStatus("COMPLETED"))
	assert.Equal(t, MediaStatusInProgress, ParseMediaStatus(" IN_PROGRESS"))
	assert.Equal(t, MediaStatusPlanned, ParseMediaStatus("completed"))
}

func TestMerge(t *testing.T) {
	existing := []Vocabulary{
		{ID: "1", Word: "猫"},
		{ID: "2", Word: "犬"},
	}

	tests := []struct {
		name        string
		incoming    []Vocabulary
		key         KeyFunc[Vocabulary]
		wantIDs     []string
		wantSkipped int
	}{
		{
			name:        "duplicate word is dropped",
			incoming:    []Vocabulary{{ID: "3", Word: "猫"}},
			key:         VocabularyKey,
			wantIDs:     []string{"1", "2"},
			wantSkipped: 1,
		},
		{
			name:     "new words are prepended in order",
			incoming: []Vocabulary{{ID: "3", Word: "鳥"}, {ID: "4", Word: "魚"}},
			key:      VocabularyKey,
			wantIDs:  []string{"3", "4", "1", "2"},
		},
		{
			name:     "duplicates inside the batch are kept",
			incoming: []Vocabulary{{ID: "3", Word: "鳥"}, {ID: "4", Word: "鳥"}},
			key:      VocabularyKey,
			wantIDs:  []string{"3", "4", "1", "2"},
		},
		{
			name:     "no key concatenates",
			incoming: []Vocabulary{{ID: "3", Word: "猫"}},
			wantIDs:  []string{"3", "1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := Merge(existing, tt.incoming, tt.key)

			var ids []string
			for _, v := range got {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantSkipped, skipped)
			assert.Len(t, existing, 2)
		})
	}
}

func TestPartition(t *testing.T) {
	existing := []TravelSpot{{ID: "1", Name: "Kyoto"}}
	incoming := []TravelSpot{{ID: "2", Name: "Nara"}, {ID: "3", Name: "Kyoto"}}

	kept, dropped := Partition(existing, incoming, TravelSpotKey)
	assert.Equal(t, []TravelSpot{{ID: "2", Name: "Nara"}}, kept)
	assert.Equal(t, []TravelSpot{{ID: "3", Name: "Kyoto"}}, dropped)

	kept, dropped = Partition(existing, incoming, nil)
	assert.Equal(t, incoming, kept)
	assert.Empty(t, dropped)
}

func TestIdentity(t *testing.T) {
	entry := WithIdentity(DiaryEntry{Date: "2026-01-01"}, "d-1")
	assert.Equal(t, "d-1", Identity(entry))
	assert.Equal(t, "2026-01-01", entry.Date)

	spot := WithIdentity(TravelSpot{Name: "Kyoto"}, "t-1")
	assert.Equal(t, "t-1", Identity(spot))
}
