package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
)

// TranscribeRequest describes one recording. Exactly one of Audio and
// AudioURL is used, Audio taking precedence.
type TranscribeRequest struct {
	Audio        io.Reader
	AudioURL     string
	SpeakerCount int
}

// Utterance is one speaker turn. Start and End are milliseconds.
type Utterance struct {
	Speaker string
	Text    string
	Start   int64
	End     int64
}

// Transcript is the text output of a transcription job.
type Transcript struct {
	ID         string
	Text       string
	Utterances []Utterance
}

// Transcriber turns audio into speaker-labelled text.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscribeRequest) (*Transcript, error)
}

// AssemblyAITranscriber transcribes recordings with the official SDK.
type AssemblyAITranscriber struct {
	client       *aai.Client
	languageCode string
	logger       *zap.Logger
}

// NewAssemblyAITranscriber creates a transcriber using the provided config.
// If the key is empty, falls back to ASSEMBLYAI_API_KEY.
func NewAssemblyAITranscriber(cfg *config.AssemblyAIConfig, logger *zap.Logger) *AssemblyAITranscriber {
	var apiKey, lang string
	if cfg != nil {
		apiKey = cfg.APIKey
		lang = cfg.LanguageCode
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAITranscriber{
		client:       aai.NewClient(apiKey),
		languageCode: lang,
		logger:       logger,
	}
}

// Transcribe submits the recording and blocks until AssemblyAI finishes.
func (t *AssemblyAITranscriber) Transcribe(ctx context.Context, req TranscribeRequest) (*Transcript, error) {
	params := transcriptParams(t.languageCode, req.SpeakerCount)

	var (
		tr  aai.Transcript
		err error
	)
	switch {
	case req.Audio != nil:
		tr, err = t.client.Transcripts.TranscribeFromReader(ctx, req.Audio, params)
	case req.AudioURL != "":
		tr, err = t.client.Transcripts.TranscribeFromURL(ctx, req.AudioURL, params)
	default:
		return nil, errors.New("transcribe: audio or audio url is required")
	}
	if err != nil {
		if t.logger != nil {
			t.logger.Error("assemblyai.transcription_failed", zap.Error(err))
		}
		return nil, fmt.Errorf("assemblyai transcription failed: %w", err)
	}

	out, err := fromSDKTranscript(tr)
	if err != nil {
		return nil, err
	}
	if t.logger != nil {
		t.logger.Info("assemblyai.transcription_completed",
			zap.String("transcript_id", out.ID),
			zap.Int("utterances", len(out.Utterances)))
	}
	return out, nil
}

func transcriptParams(languageCode string, speakerCount int) *aai.TranscriptOptionalParams {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
	}
	if languageCode != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(languageCode)
	}
	if speakerCount > 0 {
		expected := int64(speakerCount)
		params.SpeakersExpected = &expected
	}
	return params
}

func fromSDKTranscript(tr aai.Transcript) (*Transcript, error) {
	out := &Transcript{ID: deref(tr.ID), Text: deref(tr.Text)}
	if tr.Status == aai.TranscriptStatusError {
		return nil, fmt.Errorf("assemblyai transcript %s failed: %s", out.ID, deref(tr.Error))
	}
	for _, u := range tr.Utterances {
		out.Utterances = append(out.Utterances, Utterance{
			Speaker: deref(u.Speaker),
			Text:    deref(u.Text),
			Start:   deref(u.Start),
			End:     deref(u.End),
		})
	}
	return out, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
