// Package blocking remembers which strategies recently hit bot detection, per domain.
package blocking

import (
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"ytproxy/internal/domain/consts"
	"ytproxy/internal/utils/logging"

	"golang.org/x/net/publicsuffix"
)

// Block is one remembered bot detection.
type Block struct {
	Domain    string        `json:"domain"`
	Strategy  string        `json:"strategy"`
	BlockedAt time.Time     `json:"blockedAt"`
	Remaining time.Duration `json:"remaining"`
}

// Registry holds bot detections in memory until their cooldown expires.
type Registry struct {
	mu     sync.RWMutex
	blocks map[string]map[string]time.Time // domain -> strategy -> blocked at
	now    func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		blocks: make(map[string]map[string]time.Time),
		now:    time.Now,
	}
}

// IsBotDetection reports whether a yt-dlp error message is a bot check.
func IsBotDetection(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "confirm you’re not a bot") || // Curly apostrophe
		strings.Contains(msg, "confirm you're not a bot") ||
		strings.Contains(msg, "not a robot")
}

// Record marks strategy as bot-blocked for the URL's domain.
func (r *Registry) Record(rawURL, strategy string) {
	domain := domainOf(rawURL)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.blocks[domain] == nil {
		r.blocks[domain] = make(map[string]time.Time)
	}
	r.blocks[domain][strategy] = r.now()

	logging.W("Strategy %q hit bot detection on %q, remembering for %v", strategy, domain, TimeoutForDomain(domain))
}

// IsBlocked reports whether strategy is within its cooldown for the URL's domain.
func (r *Registry) IsBlocked(rawURL, strategy string) (isBlocked bool, blockedAt time.Time, remaining time.Duration) {
	domain := domainOf(rawURL)

	r.mu.RLock()
	defer r.mu.RUnlock()

	blockedAt, ok := r.blocks[domain][strategy]
	if !ok {
		return false, time.Time{}, 0
	}

	unlock := blockedAt.Add(TimeoutForDomain(domain))
	if !r.now().Before(unlock) {
		return false, blockedAt, 0
	}
	return true, blockedAt, unlock.Sub(r.now())
}

// Clear forgets a block, e.g. after the strategy succeeded again.
func (r *Registry) Clear(rawURL, strategy string) {
	domain := domainOf(rawURL)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[domain][strategy]; !ok {
		return
	}
	delete(r.blocks[domain], strategy)
	if len(r.blocks[domain]) == 0 {
		delete(r.blocks, domain)
	}
	logging.S("Strategy %q works again on %q", strategy, domain)
}

// CleanExpired drops blocks past their cooldown and returns how many were removed.
func (r *Registry) CleanExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for domain, strategies := range r.blocks {
		for strategy, blockedAt := range strategies {
			if r.now().After(blockedAt.Add(TimeoutForDomain(domain))) {
				delete(strategies, strategy)
				removed++
			}
		}
		if len(strategies) == 0 {
			delete(r.blocks, domain)
		}
	}
	return removed
}

// Snapshot returns the active blocks ordered by domain and strategy.
func (r *Registry) Snapshot() []Block {
	r.CleanExpired()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Block, 0, len(r.blocks))
	for domain, strategies := range r.blocks {
		for strategy, blockedAt := range strategies {
			out = append(out, Block{
				Domain:    domain,
				Strategy:  strategy,
				BlockedAt: blockedAt,
				Remaining: blockedAt.Add(TimeoutForDomain(domain)).Sub(r.now()),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Domain != out[j].Domain {
			return out[i].Domain < out[j].Domain
		}
		return out[i].Strategy < out[j].Strategy
	})
	return out
}

// TimeoutForDomain returns the cooldown for a registrable domain.
func TimeoutForDomain(domain string) time.Duration {
	if timeout, ok := consts.BotTimeoutMap[domain]; ok {
		return timeout
	}
	return consts.DefaultBotTimeout
}

// domainOf extracts the eTLD+1 of a URL, e.g. m.youtube.com -> youtube.com.
func domainOf(rawURL string) string {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host = u.Hostname()
	}
	host = strings.ToLower(host)

	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}
