package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/keepsake/internal/enrich"
	"github.com/at-ishikawa/keepsake/internal/library"
	mock_enrich "github.com/at-ishikawa/keepsake/internal/mocks/enrich"
	"github.com/at-ishikawa/keepsake/internal/storage"
	"github.com/at-ishikawa/keepsake/internal/testutil"
)

func TestEnrichCommand_NoAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)

	_, err := runCommand(t, cfgPath, "enrich", "猫")
	assert.ErrorIs(t, err, errMissingAPIKey)
}

func TestRunEnrich(t *testing.T) {
	cat := enrich.VocabularyDetails{Word: "猫", Reading: "ねこ", Meaning: "cat"}

	tests := []struct {
		name          string
		words         []string
		save          bool
		ttl           time.Duration
		setupMock     func(m *mock_enrich.MockClient)
		wantOutput    []string
		wantWords     []string
		wantErrSubstr string
	}{
		{
			name:  "repeated words hit the cache",
			words: []string{"猫", "猫"},
			ttl:   time.Minute,
			setupMock: func(m *mock_enrich.MockClient) {
				m.EXPECT().EnrichVocabulary(gomock.Any(), "猫").Return(cat, nil).Times(1)
			},
			wantOutput: []string{"猫 (ねこ)", "meaning:    cat"},
			wantWords:  []string{},
		},
		{
			name:  "zero ttl asks every time",
			words: []string{"猫", "猫"},
			setupMock: func(m *mock_enrich.MockClient) {
				m.EXPECT().EnrichVocabulary(gomock.Any(), "猫").Return(cat, nil).Times(2)
			},
			wantWords: []string{},
		},
		{
			name:  "save adds each word once",
			words: []string{"猫", "猫"},
			save:  true,
			ttl:   time.Minute,
			setupMock: func(m *mock_enrich.MockClient) {
				m.EXPECT().EnrichVocabulary(gomock.Any(), "猫").Return(cat, nil).Times(1)
			},
			wantOutput: []string{"Saved vocabulary", "Already saved 猫"},
			wantWords:  []string{"猫"},
		},
		{
			name:  "client error stops the run",
			words: []string{"犬", "猫"},
			ttl:   time.Minute,
			setupMock: func(m *mock_enrich.MockClient) {
				m.EXPECT().EnrichVocabulary(gomock.Any(), "犬").Return(enrich.VocabularyDetails{}, errors.New("rate limited"))
			},
			wantErrSubstr: "rate limited",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mock_enrich.NewMockClient(ctrl)
			tt.setupMock(mockClient)
			lib := library.New(storage.NewMemoryStore(), "default")
			var out bytes.Buffer

			err := runEnrich(context.Background(), &out, lib, enrich.NewCachedClient(mockClient, tt.ttl), tt.words, tt.save)
			if tt.wantErrSubstr != "" {
				assert.ErrorContains(t, err, tt.wantErrSubstr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, out.String(), want)
			}

			list, err := lib.Vocabulary().List(context.Background())
			require.NoError(t, err)
			words := make([]string, 0, len(list))
			for _, v := range list {
				words = append(words, v.Word)
			}
			assert.Equal(t, tt.wantWords, words)
		})
	}
}
