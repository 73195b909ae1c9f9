// Package errconsts holds constant error messages
package errconsts

// Programs
const (
	YTDLPFailure  = "yt-dlp command failed: %w"
	YTDLPExitCode = "exit code %d"
)

// Client facing
const (
	URLRequired     = "URL is required"
	URLUnsupported  = "Only YouTube URLs are supported right now."
	ModeUnsupported = "mode must be \"video\" or \"audio\""
	InvalidBody     = "Invalid request body"
	InfoFailed      = "Failed to get video info. Check server logs for details."
	DownloadFailed  = "Failed to download media."
)

// File
const (
	ConfigFileReadFail = "failed to read config file %q: %w"
)
