package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/keepsake/internal/csvschema"
	"github.com/at-ishikawa/keepsake/internal/record"
	"github.com/at-ishikawa/keepsake/internal/storage"
)

var ErrUnknownKind = errors.New("unknown record kind")

// Kind is a collection seen without its record type.
type Kind interface {
	Name() string
	Stem() string
	Title() string
	Labels() []string
	StorageKey() string
	Rows(ctx context.Context) ([][]string, error)
	Count(ctx context.Context) (int, error)
	Export(ctx context.Context) (Export, error)
	Import(ctx context.Context, raw []byte, opts ImportOptions) (ImportResult, error)
	AddFields(ctx context.Context, fields map[string]string) (string, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, raw []byte) (ImportResult, bool, error)
}

type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func newOptions(opts []Option) options {
	o := options{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Library holds every collection of one profile.
type Library struct {
	profile    string
	vocabulary *Collection[record.Vocabulary]
	kinds      []Kind
}

func New(store storage.Store, profile string, opts ...Option) *Library {
	vocabulary := NewCollection(store, csvschema.Vocabulary, profile, opts...)
	return &Library{
		profile:    profile,
		vocabulary: vocabulary,
		kinds: []Kind{
			vocabulary,
			NewCollection(store, csvschema.TravelSpot, profile, opts...),
			NewCollection(store, csvschema.Song, profile, opts...),
			NewCollection(store, csvschema.MediaItem, profile, opts...),
			NewCollection(store, csvschema.ExperienceItem, profile, opts...),
			NewCollection(store, csvschema.DiaryEntry, profile, opts...),
		},
	}
}

func (l *Library) Profile() string { return l.profile }

// Kinds returns every collection in a stable order.
func (l *Library) Kinds() []Kind {
	return l.kinds
}

// Kind finds a collection by name or storage stem, ignoring case.
func (l *Library) Kind(name string) (Kind, error) {
	for _, k := range l.kinds {
		if strings.EqualFold(k.Name(), name) || strings.EqualFold(k.Stem(), name) {
			return k, nil
		}
	}
	return nil, fmt.Errorf("%w: %q, valid kinds are %s", ErrUnknownKind, name, strings.Join(l.Names(), ", "))
}

func (l *Library) Names() []string {
	names := make([]string, len(l.kinds))
	for i, k := range l.kinds {
		names[i] = k.Name()
	}
	return names
}

// Vocabulary returns the typed vocabulary collection used by enrichment.
func (l *Library) Vocabulary() *Collection[record.Vocabulary] {
	return l.vocabulary
}
