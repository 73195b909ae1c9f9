// Package consts holds various global, unchanging values.
package consts

// Rendition labels and reserved format IDs
const (
	AutoBestAudioLabel = "Best Quality (Auto)"
	AutoBestAudioID    = "bestaudio"
	AudioLabelSuffix   = " (MP3)"
	DefaultTitle       = "Video"
)

// FallbackVideoRenditions are shown when metadata yields no usable video rendition.
var FallbackVideoRenditions = [...][2]string{
	{"720p", "22"},
	{"360p", "18"},
}

// yt-dlp format fields
const (
	CodecNone        = "none"
	ExtMP4           = "mp4"
	ContainerMP4Dash = "mp4_dash"
)

// Download output
const (
	FallbackFilename   = "media"
	MaxFilenameLen     = 80
	ExtMP3             = "mp3"
	ContentTypeMP3     = "audio/mpeg"
	ContentTypeMP4     = "video/mp4"
	ContentDisposition = "attachment; filename=%q"
)

// Accepted hosts (registrable domains)
var AllowedDomains = [...]string{"youtube.com", "youtu.be"}
