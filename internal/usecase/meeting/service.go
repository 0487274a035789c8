package meeting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/repositories"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/infrastructure/cache"
	aiuse "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ai"
	pkgai "github.com/CS222-UIUC/fa25-fa25-team027/pkg/ai"
)

// RecordingPrefix is the object prefix of archived recordings.
const RecordingPrefix = "recordings/"

// DefaultPageSize is used when a listing asks for page size 0.
const DefaultPageSize = 5

var (
	// ErrMissingAudio means an audio request carried no recording.
	ErrMissingAudio = errors.New("audio is required")
	// ErrTranscriberUnavailable means no transcriber is configured.
	ErrTranscriberUnavailable = errors.New("transcription is not configured")
	// ErrTranscription wraps a failed transcription job.
	ErrTranscription = errors.New("transcription failed")
	// ErrArchive wraps a failed recording upload.
	ErrArchive = errors.New("recording archive failed")
)

// Archive stores uploaded recordings and hands out URLs the transcriber can
// fetch them from.
type Archive interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	GetFileURL(ctx context.Context, objectName string) (string, error)
}

// Service turns transcripts and recordings into stored meetings
type Service interface {
	ProcessTranscript(ctx context.Context, input ProcessInput) (*entities.Meeting, error)
	ProcessAudio(ctx context.Context, input AudioInput) (*entities.Meeting, error)
	ExtractSummary(ctx context.Context, transcript string, opts aiuse.ExtractOptions) (*entities.SummaryRecord, error)
	GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error)
	ListMeetings(ctx context.Context, page, pageSize int) (*Page, error)
	DeleteMeeting(ctx context.Context, id int64) (bool, error)
}

// ProcessInput represents input for processing a transcript
type ProcessInput struct {
	Title      string
	Transcript string
	Speakers   []string
}

// AudioInput represents input for processing a recording
type AudioInput struct {
	Title        string
	Filename     string
	ContentType  string
	Body         io.Reader
	Size         int64
	AudioURL     string
	SpeakerCount int
	Speakers     []string
}

// Page is one page of the meeting history
type Page struct {
	Items      []entities.MeetingSummary
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// MeetingService implements Service
type MeetingService struct {
	repo            repositories.MeetingRepository
	extractor       aiuse.Extractor
	transcriber     pkgai.Transcriber
	archive         Archive
	cache           cache.Store
	cacheTTL        time.Duration
	defaultPageSize int
	logger          *zap.Logger
}

// Option configures optional collaborators of MeetingService
type Option func(*MeetingService)

// WithTranscriber enables audio processing.
func WithTranscriber(t pkgai.Transcriber) Option {
	return func(s *MeetingService) { s.transcriber = t }
}

// WithArchive stores recordings before they are transcribed.
func WithArchive(a Archive) Option {
	return func(s *MeetingService) { s.archive = a }
}

// WithCache caches meeting details for ttl.
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(s *MeetingService) {
		s.cache = store
		s.cacheTTL = ttl
	}
}

// WithDefaultPageSize overrides DefaultPageSize.
func WithDefaultPageSize(n int) Option {
	return func(s *MeetingService) {
		if n > 0 {
			s.defaultPageSize = n
		}
	}
}

// NewMeetingService creates a new meeting service
func NewMeetingService(
	repo repositories.MeetingRepository,
	extractor aiuse.Extractor,
	logger *zap.Logger,
	opts ...Option,
) *MeetingService {
	s := &MeetingService{
		repo:            repo,
		extractor:       extractor,
		defaultPageSize: DefaultPageSize,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessTranscript extracts a summary from the transcript and stores the
// meeting. Unparseable model output is stored as the fallback summary.
func (s *MeetingService) ProcessTranscript(ctx context.Context, input ProcessInput) (*entities.Meeting, error) {
	if strings.TrimSpace(input.Transcript) == "" {
		return nil, entities.ErrEmptyTranscript
	}

	rec, err := s.extractor.ExtractSummary(ctx, input.Transcript, aiuse.ExtractOptions{
		Title:    input.Title,
		Speakers: input.Speakers,
	})
	if err != nil {
		return nil, err
	}

	id, err := s.repo.SaveMeeting(ctx, entities.NewMeetingFromSummary(strings.TrimSpace(input.Title), input.Transcript, rec))
	if err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	m, err := s.repo.GetMeeting(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved meeting: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("meeting.processed",
			zap.Int64("meeting_id", id),
			zap.Bool("fallback", rec.Fallback))
	}
	s.cachePut(ctx, m)
	return m, nil
}

// ProcessAudio transcribes a recording and processes the transcript. When
// an archive is configured the recording is uploaded first and transcribed
// from its URL.
func (s *MeetingService) ProcessAudio(ctx context.Context, input AudioInput) (*entities.Meeting, error) {
	if s.transcriber == nil {
		return nil, ErrTranscriberUnavailable
	}
	if input.Body == nil && strings.TrimSpace(input.AudioURL) == "" {
		return nil, ErrMissingAudio
	}

	req := pkgai.TranscribeRequest{
		Audio:        input.Body,
		AudioURL:     strings.TrimSpace(input.AudioURL),
		SpeakerCount: input.SpeakerCount,
	}

	if input.Body != nil && s.archive != nil {
		key := RecordingKey(input.Filename)
		size := input.Size
		if size <= 0 {
			size = -1
		}
		if err := s.archive.UploadFile(ctx, key, input.Body, size, input.ContentType); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArchive, err)
		}
		url, err := s.archive.GetFileURL(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArchive, err)
		}
		req = pkgai.TranscribeRequest{AudioURL: url, SpeakerCount: input.SpeakerCount}
		if s.logger != nil {
			s.logger.Info("meeting.recording_archived", zap.String("object", key))
		}
	}

	tr, err := s.transcriber.Transcribe(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscription, err)
	}

	title := strings.TrimSpace(input.Title)
	if title == "" && input.Filename != "" {
		title = strings.TrimSuffix(path.Base(input.Filename), path.Ext(input.Filename))
	}
	return s.ProcessTranscript(ctx, ProcessInput{
		Title:      title,
		Transcript: TranscriptText(tr),
		Speakers:   input.Speakers,
	})
}

// ExtractSummary runs the extractor without storing anything.
func (s *MeetingService) ExtractSummary(ctx context.Context, transcript string, opts aiuse.ExtractOptions) (*entities.SummaryRecord, error) {
	return s.extractor.ExtractSummary(ctx, transcript, opts)
}

// GetMeeting returns a meeting, reading through the detail cache.
func (s *MeetingService) GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error) {
	if m := s.cacheGet(ctx, id); m != nil {
		return m, nil
	}
	m, err := s.repo.GetMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cachePut(ctx, m)
	return m, nil
}

// ListMeetings returns one zero-based page of the history. Page size 0
// selects the default page size.
func (s *MeetingService) ListMeetings(ctx context.Context, page, pageSize int) (*Page, error) {
	if pageSize == 0 {
		pageSize = s.defaultPageSize
	}
	items, total, err := s.repo.ListMeetings(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// DeleteMeeting removes a meeting and drops it from the cache.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.DeleteMeeting(ctx, id)
	if err != nil {
		return false, err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey(id)); err != nil && s.logger != nil {
			s.logger.Warn("meeting.cache_delete_failed", zap.Int64("meeting_id", id), zap.Error(err))
		}
	}
	return deleted, nil
}

// RecordingKey returns a fresh object key for an uploaded recording,
// keeping the lower-cased extension of the original name.
func RecordingKey(filename string) string {
	return RecordingPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

// TranscriptText renders a transcription as speaker-labelled lines, or its
// plain text when no utterances were returned.
func TranscriptText(tr *pkgai.Transcript) string {
	if tr == nil {
		return ""
	}
	if len(tr.Utterances) == 0 {
		return strings.TrimSpace(tr.Text)
	}
	segments := make([]entities.Segment, 0, len(tr.Utterances))
	for _, u := range tr.Utterances {
		segments = append(segments, entities.Segment{
			Start:   float64(u.Start) / 1000,
			End:     float64(u.End) / 1000,
			Text:    u.Text,
			Speaker: u.Speaker,
		})
	}
	return entities.FormatSegments(segments)
}

func cacheKey(id int64) string {
	return "meeting:" + strconv.FormatInt(id, 10)
}

func (s *MeetingService) cacheGet(ctx context.Context, id int64) *entities.Meeting {
	if s.cache == nil {
		return nil
	}
	raw, ok, err := s.cache.Get(ctx, cacheKey(id))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("meeting.cache_get_failed", zap.Int64("meeting_id", id), zap.Error(err))
		}
		return nil
	}
	if !ok {
		return nil
	}
	var m entities.Meeting
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		if s.logger != nil {
			s.logger.Warn("meeting.cache_decode_failed", zap.Int64("meeting_id", id), zap.Error(err))
		}
		return nil
	}
	return &m
}

func (s *MeetingService) cachePut(ctx context.Context, m *entities.Meeting) {
	if s.cache == nil || m == nil {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(m.ID), string(raw), s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("meeting.cache_set_failed", zap.Int64("meeting_id", m.ID), zap.Error(err))
	}
}
