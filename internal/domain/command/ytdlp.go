// Package command holds yt-dlp flags and fixed values.
package command

// Binary
const (
	YTDLP    = "yt-dlp"
	YTDLPExe = "yt-dlp.exe"
)

// General
const (
	CookiePath        = "--cookies"
	IgnoreErrors      = "--ignore-errors"
	JSRuntime         = "--js-runtime"
	NoCheckCerts      = "--no-check-certificates"
	NoWarnings        = "--no-warnings"
	Output            = "-o"
	Print             = "--print"
	RestrictFilenames = "--restrict-filenames"
	UserAgent         = "--user-agent"
)

// Metadata
const (
	DumpJSON           = "-j"
	PrintTitle         = "%(title)s"
	PrintFilesizeApprx = "filesize_approx"
)

// Format selection
const (
	Format       = "-f"
	ExtractAudio = "-x"
	AudioFormat  = "--audio-format"
	AudioQuality = "--audio-quality"
	ExtractorArg = "--extractor-args"
)

// Values
const (
	StdoutTarget    = "-"
	AudioFormatMP3  = "mp3"
	AudioQualityTop = "0" // yt-dlp VBR scale, 0 is best
	BestAudio       = "bestaudio"

	// Muxes a chosen video-only rendition with the best m4a audio, then degrades.
	VideoWithAudioSuffix = "+bestaudio[container=m4a]/best[container=mp4]/best"
	DefaultVideoFormat   = "best[container=mp4]/best"
)

// DefaultUserAgent is sent on every invocation.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// DefaultJSRuntime is used on Windows when none is configured.
const DefaultJSRuntime = "node"

// Player client spoofs for guest strategies.
const (
	PlayerClientAndroid    = "youtube:player_client=android"
	PlayerClientIOS        = "youtube:player_client=ios"
	PlayerClientTVEmbedded = "youtube:player_client=tv_embedded"
)
