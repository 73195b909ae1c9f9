package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"ytproxy/internal/blocking"
	"ytproxy/internal/command/builder"
	"ytproxy/internal/command/execute"
	"ytproxy/internal/domain/consts"
	"ytproxy/internal/domain/errconsts"
	"ytproxy/internal/downloads"
	"ytproxy/internal/metadata"
	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"
	"ytproxy/internal/validation"
)

const maxBodyBytes = 1 << 20

type infoRequest struct {
	URL string `json:"url"`
}

// downloadRequest accepts both the current field names and the legacy quality/type pair.
type downloadRequest struct {
	URL            string `json:"url"`
	FormatSelector string `json:"formatSelector"`
	Mode           string `json:"mode"`
	Quality        string `json:"quality"`
	Type           string `json:"type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status          string           `json:"status"`
	ActiveDownloads int              `json:"activeDownloads"`
	BotBlocks       []blocking.Block `json:"botBlocks,omitempty"`
}

// handleInfo returns the rendition catalog for a URL.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var body infoRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, errconsts.InvalidBody)
		return
	}

	url, err := validation.ValidateURL(body.URL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.metadataTimeout())
	defer cancel()

	raw, err := s.info.Run(ctx, builder.Build(s.base.BaseArgs, builder.PurposeInfo, nil), url)
	if err != nil {
		var failed *execute.AllStrategiesFailedError
		if errors.As(err, &failed) {
			for _, a := range failed.Attempts {
				logging.E("Info for %q, strategy %q: %v", url, a.Strategy, a.Err)
			}
		} else {
			logging.E("Info for %q failed: %v", url, err)
		}
		writeError(w, http.StatusInternalServerError, errconsts.InfoFailed)
		return
	}

	catalog, err := metadata.Parse(raw)
	if err != nil {
		logging.E("Info for %q returned unusable metadata: %v", url, err)
		writeError(w, http.StatusInternalServerError, errconsts.InfoFailed)
		return
	}

	logging.I("Info for %q: %d video and %d audio renditions", url, len(catalog.VideoRenditions), len(catalog.AudioRenditions))
	writeJSON(w, http.StatusOK, catalog)
}

// handleDownload streams the selected rendition as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	var body downloadRequest
	if err := decodeBody(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, errconsts.InvalidBody)
		return
	}

	selector := firstNonEmpty(body.FormatSelector, body.Quality)
	mode := firstNonEmpty(body.Mode, body.Type)

	req, err := validation.ValidateDownloadRequest(body.URL, mode, selector)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sink := &responseSink{w: w}
	err = s.dl.Stream(r.Context(), req, sink)

	var startErr *downloads.StreamStartError
	switch {
	case err == nil:
		return
	case errors.Is(err, downloads.ErrSinkFull):
		logging.I("Download of %q reached its announced length", req.URL)
		return
	case errors.Is(err, context.Canceled):
		logging.I("Client disconnected, download of %q stopped: %v", req.URL, err)
	case !sink.committed, errors.As(err, &startErr):
		logging.E("Download of %q failed before streaming: %v", req.URL, err)
	default:
		logging.E("Download of %q truncated: %v", req.URL, err)
	}

	if !sink.committed {
		writeError(w, http.StatusInternalServerError, errconsts.DownloadFailed)
	}
}

// handleHealth reports liveness, running downloads and recent bot detections.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:          "ok",
		ActiveDownloads: s.tracker.Len(),
	}
	if s.blocks != nil {
		resp.BotBlocks = s.blocks.Snapshot()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) metadataTimeout() time.Duration {
	if s.base.MetadataTimeout > 0 {
		return s.base.MetadataTimeout
	}
	return consts.DefaultMetadataTimeout
}

// ----------------- Helpers ----------------------------------------------------------------------------------------

// responseSink writes download headers on Commit and flushes every chunk.
//
// Once a Content-Length is announced, writes are clamped to it and ErrSinkFull
// is returned when it is reached. The announced size is yt-dlp's estimate.
type responseSink struct {
	w         http.ResponseWriter
	committed bool
	limited   bool
	remaining int64
}

func (s *responseSink) Commit(info *models.MediaInfo) {
	h := s.w.Header()
	h.Set("Content-Disposition", fmt.Sprintf(consts.ContentDisposition, info.Filename))
	h.Set("Content-Type", info.ContentType)
	if info.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(info.Size, 10))
		s.limited = true
		s.remaining = info.Size
	}
	s.w.WriteHeader(http.StatusOK)
	s.committed = true
}

func (s *responseSink) Write(p []byte) (int, error) {
	if !s.limited {
		return s.w.Write(p)
	}
	if s.remaining <= 0 {
		return 0, downloads.ErrSinkFull
	}

	full := int64(len(p)) >= s.remaining
	if full {
		p = p[:s.remaining]
	}
	n, err := s.w.Write(p)
	s.remaining -= int64(n)
	if err == nil && full {
		err = downloads.ErrSinkFull
	}
	return n, err
}

func (s *responseSink) Flush() {
	_ = http.NewResponseController(s.w).Flush()
}

// decodeBody decodes a JSON body. An empty body decodes as the zero value.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.E("Failed to encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
