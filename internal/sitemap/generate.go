package sitemap

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// routePriority mirrors the crawl weighting of the marketing site: home
// first, blog content next, app shell routes behind it.
func routePriority(route string) string {
	switch {
	case route == "/":
		return "1.0"
	case route == "/blog":
		return "0.9"
	case strings.HasPrefix(route, "/blog/"):
		return "0.8"
	case strings.HasPrefix(route, "/app"):
		return "0.7"
	default:
		return "0.6"
	}
}

func routeChangeFreq(route string) string {
	if strings.HasPrefix(route, "/blog/") {
		return "weekly"
	}
	return "monthly"
}

// Generate renders the sitemap XML for the manifest routes plus one
// /blog/<slug> route per blog post. Duplicate routes collapse, first
// occurrence wins.
func Generate(m *Manifest, blogSlugs []string, now time.Time) ([]byte, error) {
	siteURL := ResolveSiteURL(m)
	today := now.UTC().Format("2006-01-02")

	routes := make([]string, 0, len(m.Routes)+len(blogSlugs))
	seen := make(map[string]bool)
	for _, r := range m.Routes {
		if !seen[r] {
			seen[r] = true
			routes = append(routes, r)
		}
	}
	for _, slug := range blogSlugs {
		r := "/blog/" + slug
		if !seen[r] {
			seen[r] = true
			routes = append(routes, r)
		}
	}

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, route := range routes {
		set.URLs = append(set.URLs, urlEntry{
			Loc:        siteURL + route,
			LastMod:    today,
			ChangeFreq: routeChangeFreq(route),
			Priority:   routePriority(route),
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// Robots renders robots.txt pointing crawlers at the sitemap.
func Robots(m *Manifest) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", ResolveSiteURL(m)))
}

// WriteFiles generates sitemap.xml and robots.txt into outDir, creating it
// if needed. Returns the number of routes written.
func WriteFiles(m *Manifest, blogSlugs []string, outDir string, now time.Time) (int, error) {
	body, err := Generate(m, blogSlugs, now)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "sitemap.xml"), body, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "robots.txt"), Robots(m), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write robots.txt: %w", err)
	}

	count := len(m.Routes)
	seen := make(map[string]bool)
	for _, r := range m.Routes {
		seen[r] = true
	}
	for _, slug := range blogSlugs {
		if !seen["/blog/"+slug] {
			count++
		}
	}
	return count, nil
}
