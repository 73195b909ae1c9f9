package builder

import (
	"ytproxy/internal/domain/command"
	"ytproxy/internal/models"
)

// Purpose selects which output shape an invocation produces.
type Purpose int

const (
	PurposeInfo Purpose = iota
	PurposeTitle
	PurposeSizeEstimate
	PurposeStream
)

// Build returns base followed by the arguments for p.
//
// The target URL is not included, callers append it last. req may be nil for PurposeInfo
// and PurposeTitle.
func Build(base models.ArgList, p Purpose, req *models.DownloadRequest) models.ArgList {
	args := base.Concat(nil)

	switch p {
	case PurposeInfo:
		return args.Flag(command.DumpJSON)
	case PurposeTitle:
		return args.Pair(command.Print, command.PrintTitle)
	case PurposeSizeEstimate:
		args = args.Concat(FormatArgs(req.Mode, req.FormatSelector))
		return args.Pair(command.Print, command.PrintFilesizeApprx)
	case PurposeStream:
		args = args.Concat(FormatArgs(req.Mode, req.FormatSelector))
		return args.Pair(command.Output, command.StdoutTarget)
	}
	return args
}

// FormatArgs returns the format selection arguments for a download.
//
// Selectors are passed through verbatim, yt-dlp rejects invalid ones.
func FormatArgs(mode models.Mode, selector string) models.ArgList {
	var args models.ArgList

	if mode == models.ModeAudio {
		if selector == "" {
			selector = command.BestAudio
		}
		args = args.Flag(command.ExtractAudio)
		args = args.Pair(command.AudioFormat, command.AudioFormatMP3)
		args = args.Pair(command.AudioQuality, command.AudioQualityTop)
		return args.Pair(command.Format, selector)
	}

	if selector == "" {
		return args.Pair(command.Format, command.DefaultVideoFormat)
	}
	return args.Pair(command.Format, selector+command.VideoWithAudioSuffix)
}
