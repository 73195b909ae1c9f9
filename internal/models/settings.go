package models

import "time"

// BaseConfig is built once at startup and never mutated.
type BaseConfig struct {
	BinPath         string
	WorkDir         string
	CookieFile      string // empty when no cookie file exists
	BaseArgs        ArgList
	MetadataTimeout time.Duration
}
