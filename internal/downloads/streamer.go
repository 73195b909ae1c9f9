// Package downloads streams yt-dlp output to clients.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ytproxy/internal/blocking"
	"ytproxy/internal/command/builder"
	"ytproxy/internal/command/execute"
	"ytproxy/internal/domain/consts"
	"ytproxy/internal/domain/errconsts"
	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"
)

// Sink receives a download.
//
// Commit is called exactly once, after the process started and before the first Write.
// A Sink that wants no more bytes returns ErrSinkFull from Write.
type Sink interface {
	io.Writer
	Commit(info *models.MediaInfo)
}

type flusher interface {
	Flush()
}

// Streamer pipes yt-dlp stdout into a Sink.
type Streamer struct {
	cfg     *models.BaseConfig
	ytdlp   *execute.Ytdlp
	exec    execute.Executor
	tracker *Tracker

	strategies []models.Strategy
	blocks     *blocking.Registry
}

// NewStreamer returns a streamer running y with the base arguments in cfg.
func NewStreamer(cfg *models.BaseConfig, y *execute.Ytdlp, tracker *Tracker) *Streamer {
	if tracker == nil {
		tracker = NewTracker()
	}
	return &Streamer{
		cfg:     cfg,
		ytdlp:   y,
		exec:    y,
		tracker: tracker,
	}
}

// WithBlockRegistry makes downloads start from the first strategy not bot-blocked in reg.
//
// A nil strategies slice means execute.DefaultStrategies.
func (s *Streamer) WithBlockRegistry(reg *blocking.Registry, strategies []models.Strategy) *Streamer {
	if strategies == nil {
		strategies = execute.DefaultStrategies()
	}
	s.blocks = reg
	s.strategies = strategies
	return s
}

// Tracker returns the table of running downloads.
func (s *Streamer) Tracker() *Tracker {
	return s.tracker
}

// Resolve looks up the filename and approximate size.
//
// Both lookups are best-effort: failures fall back to a generic filename and an
// unknown size.
func (s *Streamer) Resolve(ctx context.Context, req *models.DownloadRequest) *models.MediaInfo {
	return s.resolve(ctx, req, s.baseArgs(req.URL))
}

func (s *Streamer) resolve(ctx context.Context, req *models.DownloadRequest, base models.ArgList) *models.MediaInfo {
	title, err := s.printValue(ctx, builder.Build(base, builder.PurposeTitle, req), req.URL)
	if err != nil {
		logging.W("Could not resolve title for %q, using fallback filename: %v", req.URL, err)
	}

	info := &models.MediaInfo{
		Filename:    SanitizeFilename(title) + "." + req.Mode.Ext(),
		ContentType: req.Mode.ContentType(),
	}

	raw, err := s.printValue(ctx, builder.Build(base, builder.PurposeSizeEstimate, req), req.URL)
	if err != nil {
		logging.D(1, "Size estimate failed for %q: %v", req.URL, err)
		return info
	}
	info.Size = parseSize(raw)

	logging.D(1, "Resolved download %q: filename %q, size %d", req.URL, info.Filename, info.Size)
	return info
}

// Stream runs the download and copies its stdout into sink as it arrives.
//
// A *StreamStartError is returned before Commit. After Commit, a broken download
// returns *MidStreamFailure. When ctx ends the process group is killed and the
// context error is returned. A sink returning ErrSinkFull ends the download
// successfully.
func (s *Streamer) Stream(ctx context.Context, req *models.DownloadRequest, sink Sink) error {
	base := s.baseArgs(req.URL)
	info := s.resolve(ctx, req, base)
	if err := ctx.Err(); err != nil {
		return err
	}

	procCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	args := append(builder.Build(base, builder.PurposeStream, req).Strings(), req.URL)
	cmd := s.ytdlp.Command(procCtx, args)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &StreamStartError{Err: err}
	}
	stderr := logging.NewLineWriter("yt-dlp: ")
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return &StreamStartError{Err: err}
	}
	id := s.tracker.Add(req.URL, req.Mode, cmd.Process.Pid, cancel)
	defer s.tracker.Remove(id)

	sink.Commit(info)

	written, copyErr := copyFlushing(sink, stdout)
	sinkFull := errors.Is(copyErr, ErrSinkFull)
	if copyErr != nil {
		// Client is gone or has everything it asked for, stop the producer
		cancel()
	}

	waitErr := cmd.Wait()
	if err := stderr.Close(); err != nil {
		logging.D(2, "Failed to flush stderr of %q: %v", req.URL, err)
	}

	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("download of %q stopped after %d bytes: %w", req.URL, written, ctx.Err())
	case sinkFull:
		logging.I("Client received the announced %d bytes of %q, stopped yt-dlp", written, req.URL)
		return nil
	case copyErr != nil:
		return &MidStreamFailure{Written: written, Err: copyErr}
	case waitErr != nil:
		return &MidStreamFailure{Written: written, Err: exitError(waitErr, cmd.ProcessState.ExitCode())}
	}

	logging.S("Streamed %d bytes of %q as %q", written, req.URL, info.Filename)
	return nil
}

// baseArgs returns the base vector of the first strategy not bot-blocked for url.
//
// Without a registry, or when every strategy is blocked, the configured base vector is used.
func (s *Streamer) baseArgs(url string) models.ArgList {
	if s.blocks == nil || len(s.strategies) == 0 {
		return s.cfg.BaseArgs
	}
	for i, st := range s.strategies {
		if blocked, _, _ := s.blocks.IsBlocked(url, st.Name); blocked {
			continue
		}
		if i > 0 {
			logging.I("Downloading %q with strategy %q, earlier strategies hit bot detection", url, st.Name)
		}
		return execute.EffectiveArgs(s.cfg.BaseArgs, st)
	}
	return s.cfg.BaseArgs
}

// printValue runs a --print invocation and returns its first output line.
func (s *Streamer) printValue(ctx context.Context, args models.ArgList, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.metadataTimeout())
	defer cancel()

	res, err := s.exec.Run(ctx, append(args.Strings(), url))
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf(errconsts.YTDLPExitCode, res.ExitCode)
	}

	out := strings.TrimSpace(string(res.Stdout))
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = strings.TrimSpace(out[:i])
	}
	return out, nil
}

func (s *Streamer) metadataTimeout() time.Duration {
	if s.cfg.MetadataTimeout > 0 {
		return s.cfg.MetadataTimeout
	}
	return consts.DefaultMetadataTimeout
}

// copyFlushing copies src to dst, flushing after each chunk when dst supports it.
func copyFlushing(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, consts.StreamBufferSize)
	f, canFlush := dst.(flusher)

	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err != nil {
				return written, err
			}
			if w != n {
				return written, io.ErrShortWrite
			}
			if canFlush {
				f.Flush()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}
			return written, readErr
		}
	}
}

// parseSize returns a positive byte count, or 0 for anything else.
func parseSize(raw string) int64 {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return max(n, 0)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f > 0 {
		return int64(f)
	}
	return 0
}

func exitError(err error, code int) error {
	if code > 0 {
		return fmt.Errorf(errconsts.YTDLPExitCode+": %w", code, err)
	}
	return err
}

// SanitizeFilename makes a title safe for Content-Disposition.
//
// Characters outside [A-Za-z0-9_.-] become '_' and the result is capped in length.
// An empty title yields the fallback name.
func SanitizeFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = consts.FallbackFilename
	}

	var b strings.Builder
	for _, r := range title {
		if b.Len() >= consts.MaxFilenameLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
