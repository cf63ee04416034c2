// Package sitemap generates sitemap.xml and robots.txt for the marketing
// site from a route manifest and the blog post index.
package sitemap

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest is the route manifest (routes.yaml). SiteURL may be overridden by
// the SITE_URL environment variable.
type Manifest struct {
	SiteURL string   `yaml:"siteUrl"`
	Routes  []string `yaml:"routes"`
}

// LoadManifest reads and strictly parses a routes.yaml file. Unknown keys are
// an error so typos don't silently drop configuration.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Routes) == 0 {
		return nil, fmt.Errorf("manifest has no routes")
	}
	for _, r := range m.Routes {
		if !strings.HasPrefix(r, "/") {
			return nil, fmt.Errorf("route %q must start with /", r)
		}
	}
	return &m, nil
}

// ResolveSiteURL picks the site URL: SITE_URL env, then the manifest value,
// then a placeholder. Trailing slashes are stripped.
func ResolveSiteURL(m *Manifest) string {
	url := os.Getenv("SITE_URL")
	if url == "" {
		url = m.SiteURL
	}
	if url == "" {
		url = "https://example.com"
	}
	return strings.TrimRight(url, "/")
}

// LoadDotEnv loads KEY=VALUE pairs from a .env file into the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read env file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}
