package main

import (
	"ytproxy/internal/blocking"
	"ytproxy/internal/cfg"
	"ytproxy/internal/command/execute"
	"ytproxy/internal/downloads"
	"ytproxy/internal/server"
	"ytproxy/internal/utils/logging"
)

// initializeServer wires the yt-dlp runner, strategies and streamer into the server.
func initializeServer(s *cfg.Settings) *server.Server {
	ytdlp := execute.NewYtdlp(s.Base.BinPath, s.Base.WorkDir)
	tracker := downloads.NewTracker()
	blocks := blocking.NewRegistry()

	logging.D(1, "Serving web UI from %q, running yt-dlp from %q", s.StaticDir, s.Base.WorkDir)

	return server.New(server.Options{
		Base:      s.Base,
		Info:      execute.NewStrategyRunner(ytdlp, nil).WithBlockRegistry(blocks),
		Downloads: downloads.NewStreamer(s.Base, ytdlp, tracker).WithBlockRegistry(blocks, nil),
		Tracker:   tracker,
		Blocks:    blocks,
		StaticDir: s.StaticDir,
	})
}
