package devserver

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures describes the pages a crawl records.
type Fixtures struct {
	Pages []FixturePage `yaml:"pages"`
}

// FixturePage is one page of a fixture. Path is joined to the project domain.
type FixturePage struct {
	Path            string `yaml:"path"`
	Title           string `yaml:"title"`
	MetaDescription string `yaml:"meta_description"`
	H1              string `yaml:"h1"`
	StatusCode      int    `yaml:"status_code"`
	LoadTimeMS      int    `yaml:"load_time_ms"`
}

// DefaultFixtures returns the fixtures embedded in the binary.
func DefaultFixtures() (*Fixtures, error) {
	return parseFixtures(defaultFixtures)
}

// LoadFixtures reads fixtures from a YAML file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user via --fixtures
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return parseFixtures(data)
}

func parseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	for i, p := range f.Pages {
		if !strings.HasPrefix(p.Path, "/") {
			return nil, fmt.Errorf("fixture page %d: path %q must start with /", i, p.Path)
		}
	}
	return &f, nil
}

// pageURL joins a fixture path to a project domain. Domains without a
// scheme are crawled over https.
func pageURL(domain, path string) string {
	base := strings.TrimRight(domain, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return base + path
}
