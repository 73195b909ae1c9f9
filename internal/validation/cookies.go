package validation

import (
	"bufio"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// Netscape cookie file columns
const (
	cookieDomain = iota
	cookieHostOnly
	cookiePath
	cookieSecure
	cookieExpiration
	cookieName
	cookieValue
	cookiePieces
)

var youtubeURL = &url.URL{Scheme: "https", Host: "www.youtube.com", Path: "/"}

// CookieFileExists reports whether path is an existing regular file.
func CookieFileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// InspectCookieFile loads a Netscape cookie file into a jar and returns how many
// unexpired cookies it would send to YouTube.
func InspectCookieFile(path string) (int, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open cookie file %q: %w", path, err)
	}
	defer f.Close()

	byDomain := make(map[string][]*http.Cookie)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) != cookiePieces {
			continue
		}

		domain := strings.ToLower(parts[cookieDomain])
		httpOnly := strings.HasPrefix(domain, "#httponly_")
		domain = strings.TrimPrefix(domain, "#httponly_")
		if strings.HasPrefix(domain, "#") || strings.Contains(parts[cookieValue], `"`) {
			continue
		}

		c := &http.Cookie{
			Domain:   domain,
			Path:     parts[cookiePath],
			Secure:   strings.EqualFold(parts[cookieSecure], "true"),
			HttpOnly: httpOnly,
			Name:     parts[cookieName],
			Value:    parts[cookieValue],
		}
		// 0 marks a session cookie
		if exp, err := strconv.ParseInt(parts[cookieExpiration], 10, 64); err == nil && exp > 0 {
			c.Expires = time.Unix(exp, 0)
		}
		byDomain[domain] = append(byDomain[domain], c)
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to read cookie file %q: %w", path, err)
	}

	for domain, cookies := range byDomain {
		u, err := url.Parse("https://" + strings.TrimPrefix(domain, "."))
		if err != nil {
			continue
		}
		jar.SetCookies(u, cookies)
	}
	return len(jar.Cookies(youtubeURL)), nil
}
