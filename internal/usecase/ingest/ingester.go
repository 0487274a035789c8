package ingest

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/jobcontext"
)

// TranscriptExts are processed as transcript text.
var TranscriptExts = []string{".txt", ".md"}

// AudioExts are transcribed before processing.
var AudioExts = []string{".mp3", ".wav", ".m4a"}

// ErrUnsupportedFile means the file type is not ingested.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Ingester turns files dropped into a folder into stored meetings
type Ingester struct {
	svc       meeting.Service
	doneDir   string
	failedDir string
	audio     bool
	logger    *zap.Logger
}

// NewIngester creates an ingester. Audio files are accepted only when audio
// is true, that is when a transcriber is configured.
func NewIngester(svc meeting.Service, doneDir, failedDir string, audio bool, logger *zap.Logger) *Ingester {
	return &Ingester{
		svc:       svc,
		doneDir:   doneDir,
		failedDir: failedDir,
		audio:     audio,
		logger:    logger,
	}
}

// Extensions lists the file extensions this ingester accepts.
func (in *Ingester) Extensions() []string {
	exts := append([]string(nil), TranscriptExts...)
	if in.audio {
		exts = append(exts, AudioExts...)
	}
	return exts
}

// Handle processes one file and moves it to the done or failed directory.
func (in *Ingester) Handle(ctx context.Context, path string) error {
	ctx, cancel := jobcontext.JobBegin(ctx, jobType(path), 0)
	defer cancel()

	var id int64
	err := jobcontext.Run(ctx, func(ctx context.Context) error {
		var err error
		id, err = in.process(ctx, path)
		return err
	})
	if errors.Is(err, ErrUnsupportedFile) {
		return err
	}

	dest := in.doneDir
	if err != nil {
		dest = in.failedDir
	}
	if mvErr := moveInto(path, dest); mvErr != nil {
		if in.logger != nil {
			in.logger.Error("ingest.move_failed", append(jobcontext.Fields(ctx),
				zap.String("file", path), zap.String("dest", dest), zap.Error(mvErr))...)
		}
		if err == nil {
			err = mvErr
		}
	}
	if err != nil {
		return fmt.Errorf("ingest %s: %w", filepath.Base(path), err)
	}

	if in.logger != nil {
		in.logger.Info("ingest.processed", append(jobcontext.Fields(ctx),
			zap.String("file", path), zap.Int64("meeting_id", id))...)
	}
	return nil
}

func (in *Ingester) process(ctx context.Context, path string) (int64, error) {
	ext := strings.ToLower(filepath.Ext(path))
	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	switch {
	case contains(TranscriptExts, ext):
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, err
		}
		m, err := in.svc.ProcessTranscript(ctx, meeting.ProcessInput{Title: title, Transcript: string(data)})
		if err != nil {
			return 0, err
		}
		return m.ID, nil

	case in.audio && contains(AudioExts, ext):
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return 0, err
		}
		m, err := in.svc.ProcessAudio(ctx, meeting.AudioInput{
			Title:       title,
			Filename:    filepath.Base(path),
			ContentType: mime.TypeByExtension(ext),
			Body:        f,
			Size:        info.Size(),
		})
		if err != nil {
			return 0, err
		}
		return m.ID, nil

	default:
		return 0, ErrUnsupportedFile
	}
}

func jobType(path string) string {
	if contains(AudioExts, strings.ToLower(filepath.Ext(path))) {
		return "audio"
	}
	return "transcript"
}

// maxNameAttempts bounds the numbered names tried when the target exists.
const maxNameAttempts = 1000

func moveInto(path, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	target, err := freeName(dir, filepath.Base(path))
	if err != nil {
		return err
	}
	return os.Rename(path, target)
}

// freeName returns dir/name, or dir/<stem>-<n><ext> for the first n that
// is not taken.
func freeName(dir, name string) (string, error) {
	target := filepath.Join(dir, name)
	if _, err := os.Lstat(target); errors.Is(err, os.ErrNotExist) {
		return target, nil
	} else if err != nil {
		return "", err
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; n <= maxNameAttempts; n++ {
		target = filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
		if _, err := os.Lstat(target); errors.Is(err, os.ErrNotExist) {
			return target, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", name, dir)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
