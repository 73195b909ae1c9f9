// Package metadata turns yt-dlp JSON output into a rendition catalog.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"ytproxy/internal/domain/consts"
	"ytproxy/internal/models"
	"ytproxy/internal/parsing"
	"ytproxy/internal/utils/logging"
)

// rawInfo matches the subset of yt-dlp's --dump-json output in use.
type rawInfo struct {
	Title      *string      `json:"title"`
	Thumbnail  *string      `json:"thumbnail"`
	Uploader   string       `json:"uploader"`
	Duration   float64      `json:"duration"`
	UploadDate string       `json:"upload_date"`
	Formats    *[]rawFormat `json:"formats"`
}

type rawFormat struct {
	FormatID  string   `json:"format_id"`
	Ext       string   `json:"ext"`
	Container string   `json:"container"`
	VCodec    *string  `json:"vcodec"`
	ACodec    *string  `json:"acodec"`
	Height    *float64 `json:"height"`
	ABR       *float64 `json:"abr"`
}

// Parse builds a catalog from raw --dump-json output.
//
// Only the first JSON document is read, playlist output emits one per line.
func Parse(raw []byte) (*models.Catalog, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &MalformedMetadataError{Reason: "empty output"}
	}

	var info rawInfo
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&info); err != nil {
		return nil, &MalformedMetadataError{Reason: "invalid JSON", Err: err}
	}
	if info.Formats == nil {
		return nil, &MalformedMetadataError{Reason: "no formats list"}
	}

	c := &models.Catalog{
		Title:     consts.DefaultTitle,
		Thumbnail: info.Thumbnail,
		Uploader:  info.Uploader,
		Duration:  info.Duration,
	}
	if info.Title != nil && *info.Title != "" {
		c.Title = *info.Title
	}
	if c.Thumbnail != nil && *c.Thumbnail == "" {
		c.Thumbnail = nil
	}
	if date, err := parsing.UploadDate(info.UploadDate); err != nil {
		logging.D(1, "Ignoring upload date for %q: %v", c.Title, err)
	} else {
		c.UploadDate = date
	}

	c.VideoRenditions, c.AudioRenditions = renditions(*info.Formats)

	if len(c.VideoRenditions) == 0 {
		logging.D(1, "No usable video formats for %q, using fallback renditions", c.Title)
		c.VideoRenditions = fallbackVideo()
	}
	c.AudioRenditions = append([]models.Rendition{{
		Label:    consts.AutoBestAudioLabel,
		FormatID: consts.AutoBestAudioID,
	}}, c.AudioRenditions...)

	logging.D(2, "Parsed catalog %s", summary(c))
	return c, nil
}

// renditions classifies formats and returns deduplicated, descending video and audio lists.
func renditions(formats []rawFormat) (video, audio []models.Rendition) {
	seenVideo := make(map[string]struct{})
	seenAudio := make(map[string]struct{})

	for _, f := range formats {
		switch {
		case isVideoOnlyMP4(f):
			if f.Height == nil || *f.Height <= 0 {
				continue
			}
			label := strconv.Itoa(int(*f.Height)) + "p"
			if _, ok := seenVideo[label]; ok {
				continue
			}
			seenVideo[label] = struct{}{}
			video = append(video, models.Rendition{Label: label, FormatID: f.FormatID})

		case isAudioOnly(f):
			if f.ABR == nil {
				continue
			}
			kbps := int(math.Round(*f.ABR))
			if kbps <= 0 {
				continue
			}
			key := strconv.Itoa(kbps) + "k"
			if _, ok := seenAudio[key]; ok {
				continue
			}
			seenAudio[key] = struct{}{}
			audio = append(audio, models.Rendition{Label: key + consts.AudioLabelSuffix, FormatID: f.FormatID})
		}
	}

	sortDescending(video)
	sortDescending(audio)
	return video, audio
}

func codecPresent(c *string) bool {
	return c != nil && *c != "" && *c != consts.CodecNone
}

// isVideoOnlyMP4 matches MP4 streams carrying video and either no audio or a DASH video-only container.
func isVideoOnlyMP4(f rawFormat) bool {
	return codecPresent(f.VCodec) &&
		(!codecPresent(f.ACodec) || f.Container == consts.ContainerMP4Dash) &&
		f.Ext == consts.ExtMP4
}

func isAudioOnly(f rawFormat) bool {
	return !codecPresent(f.VCodec) && codecPresent(f.ACodec)
}

// sortDescending orders by the leading integer of each label.
func sortDescending(r []models.Rendition) {
	sort.SliceStable(r, func(i, j int) bool {
		return labelValue(r[i].Label) > labelValue(r[j].Label)
	})
}

func labelValue(label string) int {
	end := strings.IndexFunc(label, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(label)
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0
	}
	return n
}

func fallbackVideo() []models.Rendition {
	out := make([]models.Rendition, 0, len(consts.FallbackVideoRenditions))
	for _, fb := range consts.FallbackVideoRenditions {
		out = append(out, models.Rendition{Label: fb[0], FormatID: fb[1]})
	}
	return out
}

func summary(c *models.Catalog) string {
	return fmt.Sprintf("%q: %d video, %d audio renditions", c.Title, len(c.VideoRenditions), len(c.AudioRenditions))
}
