package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/CS222-UIUC/fa25-fa25-team027/errors"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/dto/meeting"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/adapter/presenter"
	"github.com/CS222-UIUC/fa25-fa25-team027/internal/domain/entities"
	aiuse "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/ai"
	meetingUsecase "github.com/CS222-UIUC/fa25-fa25-team027/internal/usecase/meeting"
)

// MaxAudioBytes bounds an uploaded recording.
const MaxAudioBytes = 512 << 20

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	svc    meetingUsecase.Service
	logger *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(svc meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{svc: svc, logger: logger}
}

// ProcessTranscript handles POST /meetings/process
// @Summary      Summarize and store a transcript
// @Description  Extracts a summary heading, key points, decisions and action items from a transcript and stores the meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.ProcessTranscriptRequest  true  "Transcript to process"
// @Success      201      {object}  meeting.MeetingResponse           "Stored meeting"
// @Failure      400      {object}  common.ErrorResponse              "Invalid request or empty transcript"
// @Failure      503      {object}  common.ErrorResponse              "AI service temporarily unavailable"
// @Failure      500      {object}  common.ErrorResponse              "Failed to store meeting"
// @Router       /meetings/process [post]
func (h *Meeting) ProcessTranscript(c echo.Context) error {
	var req meeting.ProcessTranscriptRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.svc.ProcessTranscript(c.Request().Context(), meetingUsecase.ProcessInput{
		Title:      req.Title,
		Transcript: req.Transcript,
		Speakers:   req.Speakers,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(m))
}

// ProcessAudio handles POST /meetings/process/audio
// @Summary      Transcribe, summarize and store a recording
// @Description  Transcribes an uploaded recording (or one reachable at audio_url) with speaker labels, then processes the transcript
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file           formData  file    false  "Recording (.mp3, .wav, .m4a)"
// @Param        audio_url      formData  string  false  "Public URL of the recording"
// @Param        title          formData  string  false  "Meeting title"
// @Param        speaker_count  formData  int     false  "Expected number of speakers"
// @Param        speakers       formData  []string  false  "Known participant names" collectionFormat(multi)
// @Success      201  {object}  meeting.MeetingResponse  "Stored meeting"
// @Failure      400  {object}  common.ErrorResponse     "Missing audio or invalid form"
// @Failure      502  {object}  common.ErrorResponse     "Transcription or storage failed"
// @Failure      503  {object}  common.ErrorResponse     "AI service temporarily unavailable"
// @Router       /meetings/process/audio [post]
func (h *Meeting) ProcessAudio(c echo.Context) error {
	var req meeting.ProcessAudioRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.AudioInput{
		Title:        req.Title,
		AudioURL:     req.AudioURL,
		SpeakerCount: req.SpeakerCount,
		Speakers:     req.Speakers,
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		if fh.Size > MaxAudioBytes {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("recording is too large").
				WithDetail("max_bytes", strconv.Itoa(MaxAudioBytes)))
		}
		f, err := fh.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidPayload())
		}
		defer f.Close()
		input.Filename = fh.Filename
		input.ContentType = fh.Header.Get(echo.HeaderContentType)
		input.Body = f
		input.Size = fh.Size
	case stdErrors.Is(err, http.ErrMissingFile), stdErrors.Is(err, http.ErrNotMultipart):
	default:
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	m, err := h.svc.ProcessAudio(c.Request().Context(), input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessStatus(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(m))
}

// ExtractSummary handles POST /summaries/extract
// @Summary      Extract a summary without storing it
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.ExtractSummaryRequest  true  "Transcript to summarize"
// @Success      200      {object}  meeting.SummaryResponse        "Extracted summary"
// @Failure      400      {object}  common.ErrorResponse           "Invalid request or empty transcript"
// @Failure      503      {object}  common.ErrorResponse           "AI service temporarily unavailable"
// @Router       /summaries/extract [post]
func (h *Meeting) ExtractSummary(c echo.Context) error {
	var req meeting.ExtractSummaryRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	rec, err := h.svc.ExtractSummary(c.Request().Context(), req.Transcript, aiuse.ExtractOptions{
		Title:    req.Title,
		Speakers: req.Speakers,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(rec))
}

// ListMeetings handles GET /meetings
// @Summary      List stored meetings
// @Description  Returns one zero-based page of meetings, newest first, each with a preview of its first key points
// @Tags         Meetings
// @Produce      json
// @Param        page       query     int  false  "Zero-based page"  default(0)
// @Param        page_size  query     int  false  "Page size"        default(5)
// @Success      200        {object}  common.ListResponse   "Meeting page"
// @Failure      400        {object}  common.ErrorResponse  "Invalid pagination"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	var req meeting.ListMeetingsRequest
	if err := h.bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPagination(err))
	}

	page, err := h.svc.ListMeetings(c.Request().Context(), req.Page, req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(page))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse  "Meeting"
// @Failure      400  {object}  common.ErrorResponse     "Invalid meeting ID"
// @Failure      404  {object}  common.ErrorResponse     "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.svc.GetMeeting(c.Request().Context(), id)
	if stdErrors.Is(err, entities.ErrMeetingNotFound) {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(id))
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Removes a meeting together with its key points, decisions and action items
// @Tags         Meetings
// @Produce      json
// @Param        id   path      int  true  "Meeting ID"
// @Success      200  {object}  meeting.DeleteMeetingResponse  "Meeting deleted"
// @Failure      400  {object}  common.ErrorResponse           "Invalid meeting ID"
// @Failure      404  {object}  common.ErrorResponse           "Meeting not found"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	id, err := parseMeetingID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	deleted, err := h.svc.DeleteMeeting(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if !deleted {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(id))
	}
	return HandleSuccess(h.logger, c, meeting.DeleteMeetingResponse{Deleted: true})
}

func (h *Meeting) bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

func parseMeetingID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidArgument("meeting id must be a positive integer").WithDetail("id", c.Param("id"))
	}
	return id, nil
}
