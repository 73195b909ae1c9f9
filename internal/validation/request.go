package validation

import (
	"net/url"
	"strings"

	"ytproxy/internal/domain/consts"
	"ytproxy/internal/domain/errconsts"
	"ytproxy/internal/models"

	"golang.org/x/net/publicsuffix"
)

// InvalidRequestError is returned before any subprocess is spawned.
type InvalidRequestError struct {
	Msg string
}

func (e *InvalidRequestError) Error() string {
	return e.Msg
}

// ValidateURL checks the URL is present and points at a supported host.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &InvalidRequestError{Msg: errconsts.URLRequired}
	}

	// Pasted links often lack a scheme
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", &InvalidRequestError{Msg: errconsts.URLUnsupported}
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname()))
	if err != nil {
		return "", &InvalidRequestError{Msg: errconsts.URLUnsupported}
	}
	for _, allowed := range consts.AllowedDomains {
		if domain == allowed {
			return u.String(), nil
		}
	}
	return "", &InvalidRequestError{Msg: errconsts.URLUnsupported}
}

// ValidateDownloadRequest validates raw client fields into a DownloadRequest.
func ValidateDownloadRequest(rawURL, mode, formatSelector string) (*models.DownloadRequest, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	m, err := models.ParseMode(mode)
	if err != nil {
		return nil, &InvalidRequestError{Msg: errconsts.ModeUnsupported}
	}
	return &models.DownloadRequest{
		URL:            u,
		Mode:           m,
		FormatSelector: strings.TrimSpace(formatSelector),
	}, nil
}
