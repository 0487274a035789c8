package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	aiuse "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ai"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
)

type fakeService struct {
	meeting.Service
	transcripts []meeting.ProcessInput
	audio       []string
	err         error
}

func (f *fakeService) ProcessTranscript(ctx context.Context, in meeting.ProcessInput) (*entities.Meeting, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.transcripts = append(f.transcripts, in)
	return &entities.Meeting{ID: int64(len(f.transcripts))}, nil
}

func (f *fakeService) ProcessAudio(ctx context.Context, in meeting.AudioInput) (*entities.Meeting, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.audio = append(f.audio, in.Title+":"+string(data))
	return &entities.Meeting{ID: 1}, nil
}

func setup(t *testing.T) (inbox, done, failed string) {
	t.Helper()
	root := t.TempDir()
	inbox = filepath.Join(root, "inbox")
	if err := os.MkdirAll(inbox, 0o755); err != nil {
		t.Fatal(err)
	}
	return inbox, filepath.Join(root, "done"), filepath.Join(root, "failed")
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func TestHandle_Transcript(t *testing.T) {
	inbox, done, failed := setup(t)
	svc := &fakeService{}
	in := NewIngester(svc, done, failed, false, nil)

	p := write(t, inbox, "Weekly Sync.txt", "Ana: hi")
	if err := in.Handle(context.Background(), p); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(svc.transcripts) != 1 || svc.transcripts[0].Title != "Weekly Sync" || svc.transcripts[0].Transcript != "Ana: hi" {
		t.Fatalf("transcripts = %+v", svc.transcripts)
	}
	if exists(p) || !exists(filepath.Join(done, "Weekly Sync.txt")) {
		t.Fatal("file not moved to done dir")
	}
}

func TestHandle_FailureMovesToFailed(t *testing.T) {
	inbox, done, failed := setup(t)
	svc := &fakeService{err: aiuse.ErrExtraction}
	in := NewIngester(svc, done, failed, false, nil)

	p := write(t, inbox, "notes.md", "text")
	if err := in.Handle(context.Background(), p); !errors.Is(err, aiuse.ErrExtraction) {
		t.Fatalf("err = %v", err)
	}
	if !exists(filepath.Join(failed, "notes.md")) {
		t.Fatal("file not moved to failed dir")
	}
}

func TestHandle_SameNameDoesNotOverwrite(t *testing.T) {
	inbox, done, failed := setup(t)
	svc := &fakeService{}
	in := NewIngester(svc, done, failed, false, nil)

	for _, content := range []string{"first", "second", "third"} {
		p := write(t, inbox, "standup.txt", content)
		if err := in.Handle(context.Background(), p); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}
	want := map[string]string{"standup.txt": "first", "standup-1.txt": "second", "standup-2.txt": "third"}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(done, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", name, data, content)
		}
	}
}

func TestHandle_Audio(t *testing.T) {
	inbox, done, failed := setup(t)
	svc := &fakeService{}

	p := write(t, inbox, "call.wav", "RIFF")
	if err := NewIngester(svc, done, failed, false, nil).Handle(context.Background(), p); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("err = %v, want ErrUnsupportedFile", err)
	}
	if !exists(p) {
		t.Fatal("unsupported file moved")
	}

	if err := NewIngester(svc, done, failed, true, nil).Handle(context.Background(), p); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(svc.audio) != 1 || svc.audio[0] != "call:RIFF" {
		t.Fatalf("audio = %v", svc.audio)
	}
	if !exists(filepath.Join(done, "call.wav")) {
		t.Fatal("file not moved to done dir")
	}
}

func TestExtensions(t *testing.T) {
	if n := len(NewIngester(nil, "", "", false, nil).Extensions()); n != len(TranscriptExts) {
		t.Fatalf("extensions = %d", n)
	}
	if n := len(NewIngester(nil, "", "", true, nil).Extensions()); n != len(TranscriptExts)+len(AudioExts) {
		t.Fatalf("extensions = %d", n)
	}
}
