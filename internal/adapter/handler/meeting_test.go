package handler

import (
	"bytes"
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CS222-UIUC/fa25-fa25-team027/errors"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	aiuse "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ai"
	meetingUsecase "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/config"
	"github.com/CS222-UIUC/fa25-fa25-team027/pkg/table"
)

type fakeService struct {
	err       error
	meetings  map[int64]*entities.Meeting
	processed []meetingUsecase.ProcessInput
	audio     meetingUsecase.AudioInput
	audioBody string
	listArgs  [2]int
}

func (f *fakeService) ProcessTranscript(ctx context.Context, in meetingUsecase.ProcessInput) (*entities.Meeting, error) {
	if f.err != nil {
		return nil, f.err
	}
	if strings.TrimSpace(in.Transcript) == "" {
		return nil, entities.ErrEmptyTranscript
	}
	f.processed = append(f.processed, in)
	return &entities.Meeting{
		ID:             1,
		CreatedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Title:          in.Title,
		Transcript:     in.Transcript,
		SummaryHeading: "Sync",
		KeyPoints:      []string{"A"},
		ActionItems:    []entities.ActionItem{entities.NewActionItem("", "Write tests", "")},
	}, nil
}

func (f *fakeService) ProcessAudio(ctx context.Context, in meetingUsecase.AudioInput) (*entities.Meeting, error) {
	if f.err != nil {
		return nil, f.err
	}
	if in.Body == nil && in.AudioURL == "" {
		return nil, meetingUsecase.ErrMissingAudio
	}
	f.audio = in
	if in.Body != nil {
		data, _ := io.ReadAll(in.Body)
		f.audioBody = string(data)
	}
	return &entities.Meeting{ID: 2, Title: in.Title}, nil
}

func (f *fakeService) ExtractSummary(ctx context.Context, transcript string, opts aiuse.ExtractOptions) (*entities.SummaryRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entities.SummaryRecord{SummaryHeading: "Preview", Fallback: true}, nil
}

func (f *fakeService) GetMeeting(ctx context.Context, id int64) (*entities.Meeting, error) {
	if m, ok := f.meetings[id]; ok {
		return m, nil
	}
	return nil, entities.ErrMeetingNotFound
}

func (f *fakeService) ListMeetings(ctx context.Context, page, pageSize int) (*meetingUsecase.Page, error) {
	f.listArgs = [2]int{page, pageSize}
	if f.err != nil {
		return nil, f.err
	}
	return &meetingUsecase.Page{
		Items:      []entities.MeetingSummary{{ID: 3, Title: "Weekly", Preview: []string{"A"}}},
		Page:       page,
		PageSize:   pageSize,
		TotalItems: 1,
		TotalPages: 1,
	}, nil
}

func (f *fakeService) DeleteMeeting(ctx context.Context, id int64) (bool, error) {
	if _, ok := f.meetings[id]; ok {
		delete(f.meetings, id)
		return true, nil
	}
	return false, nil
}

func newTestServer(svc meetingUsecase.Service) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(nil)
	NewRouter(config.Default(), NewMeetingHandler(svc, nil)).Setup(e)
	return e
}

func do(e *echo.Echo, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestProcessTranscript(t *testing.T) {
	svc := &fakeService{}
	e := newTestServer(svc)

	rec := do(e, http.MethodPost, "/v1/meetings/process", echo.MIMEApplicationJSON,
		strings.NewReader(`{"title":"Weekly","transcript":"Ana: hi","speakers":["Ana"]}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	if data["summary_heading"] != "Sync" || data["title"] != "Weekly" {
		t.Fatalf("data = %v", data)
	}
	items := data["action_items"].([]interface{})
	if items[0].(map[string]interface{})["assignee"] != entities.UnassignedAssignee {
		t.Fatalf("action items = %v", items)
	}
	if decisions, ok := data["decisions"].([]interface{}); !ok || len(decisions) != 0 {
		t.Fatalf("decisions = %v", data["decisions"])
	}
	if len(svc.processed) != 1 || svc.processed[0].Speakers[0] != "Ana" {
		t.Fatalf("processed = %+v", svc.processed)
	}
}

func TestProcessTranscript_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   string
		status int
		code   string
	}{
		{"missing transcript", nil, `{"title":"x"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"blank transcript", nil, `{"transcript":"   "}`, http.StatusBadRequest, "EMPTY_TRANSCRIPT"},
		{"malformed body", nil, `{"transcript":`, http.StatusBadRequest, "INVALID_PAYLOAD"},
		{"model down", fmt.Errorf("%w: connection refused", aiuse.ErrExtraction), `{"transcript":"t"}`, http.StatusServiceUnavailable, "AI_SERVICE_UNAVAILABLE"},
		{"constraint", fmt.Errorf("insert: %w", table.ErrConstraintViolation), `{"transcript":"t"}`, http.StatusConflict, "DB_CONSTRAINT_VIOLATION"},
		{"unexpected", stdErrors.New("disk I/O error"), `{"transcript":"t"}`, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer(&fakeService{err: tt.err})
			rec := do(e, http.MethodPost, "/v1/meetings/process", echo.MIMEApplicationJSON, strings.NewReader(tt.body))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d, body = %s", rec.Code, tt.status, rec.Body)
			}
			if code := decode(t, rec)["code"]; code != tt.code {
				t.Fatalf("code = %v, want %s", code, tt.code)
			}
		})
	}
}

func TestProcessTranscript_UnavailableMessage(t *testing.T) {
	e := newTestServer(&fakeService{err: aiuse.ErrExtraction})
	rec := do(e, http.MethodPost, "/v1/meetings/process", echo.MIMEApplicationJSON, strings.NewReader(`{"transcript":"t"}`))
	if msg := decode(t, rec)["message"]; msg != "AI service temporarily unavailable" {
		t.Fatalf("message = %v", msg)
	}
}

func TestProcessAudio(t *testing.T) {
	svc := &fakeService{}
	e := newTestServer(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Standup")
	mw.WriteField("speaker_count", "3")
	mw.WriteField("speakers", "Ana")
	mw.WriteField("speakers", "Bo")
	fw, err := mw.CreateFormFile("file", "standup.mp3")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("ID3audio"))
	mw.Close()

	rec := do(e, http.MethodPost, "/v1/meetings/process/audio", mw.FormDataContentType(), &buf)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if svc.audio.Title != "Standup" || svc.audio.SpeakerCount != 3 || svc.audio.Filename != "standup.mp3" || svc.audioBody != "ID3audio" {
		t.Fatalf("audio input = %+v, body = %q", svc.audio, svc.audioBody)
	}
	if !reflect.DeepEqual(svc.audio.Speakers, []string{"Ana", "Bo"}) {
		t.Fatalf("speakers = %v", svc.audio.Speakers)
	}
}

func TestProcessAudio_MissingFile(t *testing.T) {
	e := newTestServer(&fakeService{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Standup")
	mw.Close()

	rec := do(e, http.MethodPost, "/v1/meetings/process/audio", mw.FormDataContentType(), &buf)
	if rec.Code != http.StatusBadRequest || decode(t, rec)["code"] != "MISSING_AUDIO" {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestProcessAudio_TranscriberNotConfigured(t *testing.T) {
	e := newTestServer(&fakeService{err: meetingUsecase.ErrTranscriberUnavailable})
	rec := do(e, http.MethodPost, "/v1/meetings/process/audio", echo.MIMEApplicationForm, strings.NewReader("audio_url=https%3A%2F%2Fexample.com%2Fa.mp3"))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestExtractSummary(t *testing.T) {
	e := newTestServer(&fakeService{})
	rec := do(e, http.MethodPost, "/v1/summaries/extract", echo.MIMEApplicationJSON, strings.NewReader(`{"transcript":"t"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	if data["summary_heading"] != "Preview" || data["fallback"] != true {
		t.Fatalf("data = %v", data)
	}
}

func TestListMeetings(t *testing.T) {
	svc := &fakeService{}
	e := newTestServer(svc)

	rec := do(e, http.MethodGet, "/v1/meetings?page=1&page_size=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if svc.listArgs != [2]int{1, 2} {
		t.Fatalf("list args = %v", svc.listArgs)
	}
	data := decode(t, rec)["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	if pagination["page"] != float64(1) || pagination["total_items"] != float64(1) {
		t.Fatalf("pagination = %v", pagination)
	}

	rec = do(e, http.MethodGet, "/v1/meetings", "", nil)
	if rec.Code != http.StatusOK || svc.listArgs != [2]int{0, 0} {
		t.Fatalf("status = %d, args = %v", rec.Code, svc.listArgs)
	}
}

func TestListMeetings_InvalidPagination(t *testing.T) {
	e := newTestServer(&fakeService{})
	for _, q := range []string{"page=-1", "page_size=-5", "page=abc"} {
		rec := do(e, http.MethodGet, "/v1/meetings?"+q, "", nil)
		if rec.Code != http.StatusBadRequest || decode(t, rec)["code"] != "INVALID_PAGINATION" {
			t.Errorf("%s: status = %d, body = %s", q, rec.Code, rec.Body)
		}
	}

	e = newTestServer(&fakeService{err: fmt.Errorf("%w: page_size=0", entities.ErrInvalidPagination)})
	if rec := do(e, http.MethodGet, "/v1/meetings", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetAndDeleteMeeting(t *testing.T) {
	svc := &fakeService{meetings: map[int64]*entities.Meeting{7: {ID: 7, Title: "Retro"}}}
	e := newTestServer(svc)

	rec := do(e, http.MethodGet, "/v1/meetings/7", "", nil)
	if rec.Code != http.StatusOK || decode(t, rec)["data"].(map[string]interface{})["title"] != "Retro" {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = do(e, http.MethodDelete, "/v1/meetings/7", "", nil)
	if rec.Code != http.StatusOK || decode(t, rec)["data"].(map[string]interface{})["deleted"] != true {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = do(e, http.MethodGet, "/v1/meetings/7", "", nil)
	body := decode(t, rec)
	if rec.Code != http.StatusNotFound || body["code"] != "MEETING_NOT_FOUND" {
		t.Fatalf("status = %d, body = %v", rec.Code, body)
	}
	if body["details"].(map[string]interface{})["meeting_id"] != "7" {
		t.Fatalf("details = %v", body["details"])
	}

	if rec := do(e, http.MethodDelete, "/v1/meetings/7", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
	for _, id := range []string{"abc", "0", "-3"} {
		if rec := do(e, http.MethodGet, "/v1/meetings/"+id, "", nil); rec.Code != http.StatusBadRequest {
			t.Errorf("id %s: status = %d", id, rec.Code)
		}
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	e := newTestServer(&fakeService{})
	rec := do(e, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || decode(t, rec)["status"] != "ok" {
		t.Fatalf("health = %d %s", rec.Code, rec.Body)
	}
	rec = do(e, http.MethodGet, "/v2/nothing", "", nil)
	if rec.Code != http.StatusNotFound || decode(t, rec)["code"] != "NOT_FOUND" {
		t.Fatalf("unknown route = %d %s", rec.Code, rec.Body)
	}
}

func TestToAppError(t *testing.T) {
	tests := []struct {
		err  error
		want errors.ErrorCode
	}{
		{errors.ErrMeetingNotFound(1), errors.ErrorCode_MEETING_NOT_FOUND},
		{entities.ErrMeetingNotFound, errors.ErrorCode_NOT_FOUND},
		{fmt.Errorf("wrap: %w", entities.ErrInvalidPagination), errors.ErrorCode_INVALID_PAGINATION},
		{fmt.Errorf("%w: %w", meetingUsecase.ErrTranscription, stdErrors.New("bad")), errors.ErrorCode_AI_TRANSCRIPTION_FAILED},
		{fmt.Errorf("%w: %w", meetingUsecase.ErrArchive, stdErrors.New("bad")), errors.ErrorCode_INTEGRATION_STORAGE_FAILED},
		{fmt.Errorf("select: %w", table.ErrSchema), errors.ErrorCode_DB_SCHEMA},
		{echo.NewHTTPError(http.StatusUnsupportedMediaType), errors.ErrorCode_INVALID_PAYLOAD},
		{stdErrors.New("boom"), errors.ErrorCode_INTERNAL},
	}
	for _, tt := range tests {
		if got := ToAppError(tt.err).Code; got != tt.want {
			t.Errorf("ToAppError(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
