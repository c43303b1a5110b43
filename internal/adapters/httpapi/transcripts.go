package httpapi

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barrard/video-transcribe/internal/application"
	"github.com/barrard/video-transcribe/internal/domain"
)

// segmentResponse carries times in seconds, the unit media elements report
type segmentResponse struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Label string  `json:"label"`
	Text  string  `json:"text"`
}

func toSegmentResponses(segments []domain.Segment) []segmentResponse {
	out := make([]segmentResponse, len(segments))
	for i, seg := range segments {
		out[i] = segmentResponse{
			Index: seg.Index,
			Start: seg.Start.Seconds(),
			End:   seg.End.Seconds(),
			Label: seg.Start.Format(),
			Text:  seg.Text,
		}
	}
	return out
}

type transcriptHandler struct {
	transcripts *application.TranscriptService
}

type transcriptResponse struct {
	Name     string            `json:"name"`
	Text     string            `json:"text"`
	Segments []segmentResponse `json:"segments"`
}

func (h *transcriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	transcript, err := h.transcripts.Load(r.Context(), mux.Vars(r)[nameParam])
	if err != nil {
		APIError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, &transcriptResponse{
		Name:     transcript.Name,
		Text:     transcript.Document.Text(),
		Segments: toSegmentResponses(transcript.Document.Segments),
	})
}

type activeHandler struct {
	transcripts *application.TranscriptService
}

type activeResponse struct {
	Time     float64           `json:"t"`
	Segments []segmentResponse `json:"segments"`
}

func (h *activeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	seconds, err := strconv.ParseFloat(r.FormValue("t"), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		APIBadRequest(w, "t must be a playback time in seconds")
		return
	}

	transcript, err := h.transcripts.Load(r.Context(), mux.Vars(r)[nameParam])
	if err != nil {
		APIError(w, r, err)
		return
	}

	at := domain.TimecodeFromSeconds(seconds)
	JSONResponse(w, http.StatusOK, &activeResponse{
		Time:     at.Seconds(),
		Segments: toSegmentResponses(transcript.Engine.ActiveSegments(at)),
	})
}

type seekHandler struct {
	transcripts *application.TranscriptService
}

type seekResponse struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
}

func (h *seekHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars[indexParam])
	if err != nil {
		APIBadRequest(w, "index must be an integer")
		return
	}

	transcript, err := h.transcripts.Load(r.Context(), vars[nameParam])
	if err != nil {
		APIError(w, r, err)
		return
	}

	start, err := transcript.Engine.Seek(index)
	if err != nil {
		APIError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, &seekResponse{Index: index, Start: start.Seconds()})
}
