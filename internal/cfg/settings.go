package cfg

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"ytproxy/internal/command/builder"
	"ytproxy/internal/domain/command"
	"ytproxy/internal/domain/consts"
	"ytproxy/internal/domain/keys"
	"ytproxy/internal/file"
	"ytproxy/internal/models"
	"ytproxy/internal/utils/logging"
	"ytproxy/internal/validation"

	"github.com/spf13/viper"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// Settings is the resolved startup configuration.
type Settings struct {
	Addr      string
	StaticDir string
	Base      *models.BaseConfig
}

// Resolve builds Settings from v.
//
// Cookie content from the environment is written to disk first, so the base
// arguments reference the cookie file only when it exists afterwards.
func Resolve(v *viper.Viper) (*Settings, error) {
	exeDir := executableDir()

	timeout, err := str2duration.ParseDuration(v.GetString(keys.MetadataTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", keys.MetadataTimeout, v.GetString(keys.MetadataTimeout), err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("%s must be positive, got %v", keys.MetadataTimeout, timeout)
	}

	port := v.GetString(keys.Port)
	if port == "" {
		port = consts.DefaultPort
	}

	bin := resolveBinary(v.GetString(keys.YtdlpBin), exeDir)
	logging.I("Using yt-dlp binary at: %s", bin)

	cookieFile := provisionCookies(v.GetString(keys.CookieFile), v.GetString(keys.YoutubeCookies))

	jsRuntime := v.GetString(keys.JSRuntime)
	if jsRuntime == "" && runtime.GOOS == "windows" {
		jsRuntime = command.DefaultJSRuntime
	}

	staticDir := v.GetString(keys.StaticDir)
	if staticDir == "" {
		staticDir = filepath.Join(exeDir, consts.DefaultStaticDir)
	}

	base := &models.BaseConfig{
		BinPath:    bin,
		WorkDir:    exeDir,
		CookieFile: cookieFile,
		BaseArgs: builder.NewBaseArgs(builder.BaseOptions{
			UserAgent:  v.GetString(keys.UserAgent),
			JSRuntime:  jsRuntime,
			CookieFile: cookieFile,
		}),
		MetadataTimeout: timeout,
	}
	logging.D(1, "Base yt-dlp arguments: %v", base.BaseArgs.Strings())

	return &Settings{
		Addr:      ":" + port,
		StaticDir: staticDir,
		Base:      base,
	}, nil
}

// provisionCookies writes env cookie content and returns the cookie file path, or
// "" when no cookie file exists.
func provisionCookies(path, content string) string {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		path = filepath.Join(cwd, consts.DefaultCookieFile)
	}
	logging.D(1, "Expected cookies path: %s", path)

	if content != "" {
		n, err := file.WriteCookieFile(path, content)
		switch {
		case err != nil:
			logging.E("Failed to create cookies file: %v", err)
		case n == 0:
			logging.W("%s was set but empty", keys.YoutubeCookies)
		default:
			logging.S("Cookies file created at %q (%d bytes)", path, n)
		}
	}

	if !validation.CookieFileExists(path) {
		logging.W("No cookie file at %q, running without authentication", path)
		return ""
	}

	n, err := validation.InspectCookieFile(path)
	switch {
	case err != nil:
		logging.W("Could not inspect cookie file %q: %v", path, err)
	case n == 0:
		logging.W("Cookie file %q holds no YouTube cookies", path)
	default:
		logging.I("Using %d YouTube cookie(s) from %q", n, path)
	}
	return path
}

// resolveBinary prefers an explicit path, then a binary next to the executable, then PATH.
func resolveBinary(explicit, exeDir string) string {
	if explicit != "" {
		return explicit
	}

	name := command.YTDLP
	if runtime.GOOS == "windows" {
		name = command.YTDLPExe
	}

	local := filepath.Join(exeDir, name)
	if info, err := os.Stat(local); err == nil && info.Mode().IsRegular() {
		return local
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

// executableDir returns the directory of the running executable, or the working directory.
func executableDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}
