// Package keys holds the Viper/Cobra configuration keys.
package keys

// Server
const (
	Port      string = "port"
	StaticDir string = "static-dir"
)

// yt-dlp invocation
const (
	YtdlpBin        string = "ytdlp-bin"
	UserAgent       string = "user-agent"
	JSRuntime       string = "js-runtime"
	MetadataTimeout string = "metadata-timeout"
)

// Cookies
const (
	CookieFile     string = "cookie-file"
	YoutubeCookies string = "youtube-cookies"
)

// Program
const (
	ConfigFile string = "config-file"
	DebugLevel string = "debug-level"
)
