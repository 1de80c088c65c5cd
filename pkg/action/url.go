package action

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	searchURL  = "https://www.google.com/search?q="
	youtubeURL = "https://www.youtube.com/results?search_query="
)

var (
	bareName  = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)
	hostLabel = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)
)

// WebsiteURL turns a spoken target into a URL. It reports false when the
// target reads like a query rather than a site.
func WebsiteURL(target string) (string, bool) {
	target = strings.TrimRight(strings.TrimSpace(target), ".,!? ")
	if target == "" {
		return "", false
	}

	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return checked(target)
	}

	if strings.ContainsAny(target, " \t") {
		return "", false
	}

	if strings.Contains(target, ".") {
		host, path, found := strings.Cut(target, "/")
		if found {
			return checked("https://" + strings.ToLower(host) + "/" + path)
		}
		return checked("https://" + lower)
	}

	if bareName.MatchString(lower) {
		return checked("https://www." + lower + ".com")
	}

	return "", false
}

func checked(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || !validHost(u.Hostname()) {
		return "", false
	}
	return link, true
}

// validHost accepts IP literals, localhost and dotted DNS names.
func validHost(host string) bool {
	if host == "" || !utf8.ValidString(host) {
		return false
	}
	if net.ParseIP(host) != nil || host == "localhost" {
		return true
	}

	labels := strings.Split(strings.ToLower(host), ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if len(label) > 63 || !hostLabel.MatchString(label) {
			return false
		}
	}
	return true
}

func SearchURL(query string) string {
	return searchURL + url.QueryEscape(strings.TrimSpace(query))
}

func YouTubeSearchURL(query string) string {
	return youtubeURL + url.QueryEscape(strings.TrimSpace(query))
}

// isURL reports whether s is an absolute http(s) URL. Custom command actions
// that pass are opened; everything else is replayed as a command.
func isURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && validHost(u.Hostname())
}

// CustomURL reports whether a custom command action names a site, returning
// the URL to open. Absolute URLs and dotted hostnames qualify.
func CustomURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if isURL(s) {
		return s, true
	}
	if s != "" && !strings.ContainsAny(s, " \t") && strings.Contains(s, ".") {
		return WebsiteURL(s)
	}
	return "", false
}
