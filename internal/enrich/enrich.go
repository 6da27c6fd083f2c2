// Package enrich fills in vocabulary details with an AI model.
package enrich

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/at-ishikawa/keepsake/internal/record"
)

//go:generate mockgen -source=enrich.go -destination=../mocks/enrich/mock_client.go -package=mock_enrich

// Client looks up the details of a Japanese word.
type Client interface {
	EnrichVocabulary(ctx context.Context, word string) (VocabularyDetails, error)
}

var ErrEmptyWord = errors.New("word is empty")

// VocabularyDetails is the structured answer for one word.
type VocabularyDetails struct {
	Word               string `json:"word"`
	Reading            string `json:"reading"`
	Meaning            string `json:"meaning"`
	MeaningJP          string `json:"meaning_jp"`
	ExampleSentence    string `json:"example_sentence"`
	ExampleTranslation string `json:"example_translation"`
}

// Vocabulary converts the details into a record without id or timestamp.
func (d VocabularyDetails) Vocabulary() record.Vocabulary {
	return record.Vocabulary{
		Word:               d.Word,
		Reading:            d.Reading,
		Meaning:            d.Meaning,
		MeaningJP:          d.MeaningJP,
		ExampleSentence:    d.ExampleSentence,
		ExampleTranslation: d.ExampleTranslation,
	}
}

// CachedClient remembers answers so a word is sent to the model once per ttl.
// A ttl of zero or less disables the cache.
type CachedClient struct {
	client Client
	cache  *cache.Cache
}

func NewCachedClient(client Client, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		return &CachedClient{client: client}
	}
	return &CachedClient{
		client: client,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (c *CachedClient) EnrichVocabulary(ctx context.Context, word string) (VocabularyDetails, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return VocabularyDetails{}, ErrEmptyWord
	}
	if c.cache != nil {
		if cached, ok := c.cache.Get(word); ok {
			return cached.(VocabularyDetails), nil
		}
	}

	details, err := c.client.EnrichVocabulary(ctx, word)
	if err != nil {
		return VocabularyDetails{}, err
	}
	if details.Word == "" {
		details.Word = word
	}
	if c.cache != nil {
		c.cache.SetDefault(word, details)
	}
	return details, nil
}
