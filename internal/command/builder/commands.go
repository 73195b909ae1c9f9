// Package builder translates requests into yt-dlp argument lists.
package builder

import (
	"ytproxy/internal/domain/command"
	"ytproxy/internal/models"
)

// BaseOptions are the startup inputs of the always-on argument set.
type BaseOptions struct {
	UserAgent  string
	JSRuntime  string
	CookieFile string // only set when the file exists on disk
}

// NewBaseArgs builds the fixed flags passed on every invocation.
func NewBaseArgs(o BaseOptions) models.ArgList {
	ua := o.UserAgent
	if ua == "" {
		ua = command.DefaultUserAgent
	}

	args := make(models.ArgList, 0, 8)
	args = args.Flag(command.NoCheckCerts)
	args = args.Pair(command.UserAgent, ua)
	args = args.Flag(command.IgnoreErrors)
	args = args.Flag(command.NoWarnings)
	args = args.Flag(command.RestrictFilenames)

	if o.JSRuntime != "" {
		args = args.Pair(command.JSRuntime, o.JSRuntime)
	}
	if o.CookieFile != "" {
		args = args.Pair(command.CookiePath, o.CookieFile)
	}
	return args
}
