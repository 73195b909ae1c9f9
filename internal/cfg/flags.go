package cfg

import (
	"ytproxy/internal/domain/command"
	"ytproxy/internal/domain/consts"
	"ytproxy/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags registers flags and binds them into v.
func initProgramFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.PersistentFlags()

	// Server
	flags.StringP(keys.Port, "p", consts.DefaultPort, "Port to listen on")
	flags.String(keys.StaticDir, "", "Directory holding the compiled web UI (default: 'dist' next to the executable)")

	// yt-dlp
	flags.String(keys.YtdlpBin, "", "Path to yt-dlp (default: next to the executable, else PATH)")
	flags.String(keys.UserAgent, command.DefaultUserAgent, "User agent passed to yt-dlp")
	flags.String(keys.JSRuntime, "", "JavaScript runtime passed to yt-dlp (default: 'node' on Windows)")
	flags.String(keys.MetadataTimeout, consts.DefaultMetadataTimeout.String(), "Time limit for info, title and size lookups (e.g. '90s', '2m')")

	// Cookies
	flags.String(keys.CookieFile, "", "Netscape cookie file passed to yt-dlp (default: 'cookies.txt' in the working directory)")
	flags.String(keys.YoutubeCookies, "", "Cookie file content written to the cookie file at startup")
	if err := flags.MarkHidden(keys.YoutubeCookies); err != nil {
		return err
	}

	// Program
	flags.String(keys.ConfigFile, "", "Config file (any Viper-supported format)")
	flags.Int(keys.DebugLevel, 0, "Debugging level (0 - 5)")

	for _, k := range []string{
		keys.Port,
		keys.StaticDir,
		keys.YtdlpBin,
		keys.UserAgent,
		keys.JSRuntime,
		keys.MetadataTimeout,
		keys.CookieFile,
		keys.YoutubeCookies,
		keys.ConfigFile,
		keys.DebugLevel,
	} {
		if err := v.BindPFlag(k, flags.Lookup(k)); err != nil {
			return err
		}
	}
	return nil
}
