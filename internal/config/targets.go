package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hamed0406/sitecheck/internal/domain"
)

// ReadURLFile loads one URL per line, skipping blank lines and '#'
// comments.
func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	return urls, nil
}

// ParseHeader turns a "Name: Value" flag into a header check. Returns
// nil when there is no colon to split on.
func ParseHeader(s string) *domain.HeaderCheck {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return nil
	}
	return &domain.HeaderCheck{
		Name:  strings.TrimSpace(name),
		Value: strings.TrimSpace(value),
	}
}

// IsValidHTTPURL accepts absolute http(s) URLs with a host.
func IsValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// NormalizeHTTPURL lowercases the host, strips default ports and a
// bare trailing slash so the same site always keys the same stats
// record.
func NormalizeHTTPURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.Host = strings.ToLower(u.Host)
	if (u.Scheme == "http" && strings.HasSuffix(u.Host, ":80")) ||
		(u.Scheme == "https" && strings.HasSuffix(u.Host, ":443")) {
		u.Host = u.Host[:strings.LastIndex(u.Host, ":")]
	}
	if u.Path == "/" && u.RawQuery == "" {
		u.Path = ""
	}
	return u.String()
}

// BuildTargets assembles the immutable target set from plain URLs
// plus the shared header/body checks given on the command line.
// Every target gets an ID here; invalid URLs fail the whole load.
func BuildTargets(urls []string, header *domain.HeaderCheck, contains string) ([]domain.Target, error) {
	now := time.Now().UTC()
	out := make([]domain.Target, 0, len(urls))
	for _, raw := range urls {
		if !IsValidHTTPURL(raw) {
			return nil, fmt.Errorf("not an http(s) URL: %q", raw)
		}
		out = append(out, domain.Target{
			ID:           domain.TargetID(uuid.NewString()),
			URL:          NormalizeHTTPURL(raw),
			Header:       header,
			BodyContains: contains,
			CreatedAt:    now,
		})
	}
	return out, nil
}

// SpecTargets converts YAML target entries, assigning IDs the same
// way BuildTargets does.
func SpecTargets(specs []TargetSpec) []domain.Target {
	now := time.Now().UTC()
	out := make([]domain.Target, 0, len(specs))
	for _, s := range specs {
		out = append(out, domain.Target{
			ID:           domain.TargetID(uuid.NewString()),
			URL:          NormalizeHTTPURL(s.URL),
			Header:       s.Header,
			BodyContains: s.BodyContains,
			CreatedAt:    now,
		})
	}
	return out
}
