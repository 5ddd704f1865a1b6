package validator

import (
	"net/url"
	"strings"

	"hike-reviews/config"
)

// Validator checks that a URL points at a hike page on the review site
type Validator struct {
	host  string
	areas map[string]bool
}

// NewValidator creates a Validator for the configured host and area codes
func NewValidator(cfg config.SiteConfig) *Validator {
	areas := make(map[string]bool, len(cfg.AreaCodes))
	for _, code := range cfg.AreaCodes {
		areas[code] = true
	}
	return &Validator{
		host:  cfg.Host,
		areas: areas,
	}
}

// Validate reports whether rawURL uses https, targets the site host and
// starts its path with a known area code. It never touches the network.
func (v *Validator) Validate(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	// Userinfo is part of the network location, so it never matches the bare host
	if u.Scheme != "https" || u.User != nil || u.Host != v.host {
		return false
	}

	// Split the path as written; %2F is not a segment separator and %47 is not "G"
	segments := strings.Split(u.EscapedPath(), "/")
	if len(segments) < 2 {
		return false
	}
	return v.areas[segments[1]]
}
