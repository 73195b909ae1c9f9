package models

// Rendition is one selectable quality option.
type Rendition struct {
	Label    string `json:"label"`
	FormatID string `json:"formatId"`
}

// Catalog is the info response for a single video.
type Catalog struct {
	Title           string      `json:"title"`
	Thumbnail       *string     `json:"thumbnail"`
	Uploader        string      `json:"uploader,omitempty"`
	Duration        float64     `json:"duration,omitempty"`
	UploadDate      string      `json:"uploadDate,omitempty"`
	VideoRenditions []Rendition `json:"videoRenditions"`
	AudioRenditions []Rendition `json:"audioRenditions"`
}
