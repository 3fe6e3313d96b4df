package scraper

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

//go:embed sites/*.yml
var defaultSites embed.FS

// Site describes how to read recipes from one website with CSS selectors.
type Site struct {
	Name      string        // Derived from filename (without .yml extension)
	Hosts     []string      `yaml:"hosts"`
	Selectors SiteSelectors `yaml:"selectors"`
}

type SiteSelectors struct {
	Title        Selector `yaml:"title"`
	Description  Selector `yaml:"description"`
	Image        Selector `yaml:"image"`
	PrepTime     Selector `yaml:"prep_time"`
	CookTime     Selector `yaml:"cook_time"`
	Servings     Selector `yaml:"servings"`
	Ingredients  Selector `yaml:"ingredients"`
	Instructions Selector `yaml:"instructions"`
	Tags         Selector `yaml:"tags"`
}

// Selector picks text, or an attribute when Attr is set. In YAML it is either
// a bare CSS string or a mapping with css and attr keys.
type Selector struct {
	CSS  string `yaml:"css"`
	Attr string `yaml:"attr"`
}

func (s *Selector) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		s.CSS = value.Value
		return nil
	}

	type plain Selector
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Selector(p)
	return nil
}

func (s Selector) Empty() bool {
	return strings.TrimSpace(s.CSS) == ""
}

// First returns the value of the first matching element.
func (s Selector) First(doc *goquery.Document) string {
	if s.Empty() {
		return ""
	}
	return s.value(doc.Find(s.CSS).First())
}

// All returns the values of every matching element.
func (s Selector) All(doc *goquery.Document) []string {
	if s.Empty() {
		return nil
	}

	var values []string
	doc.Find(s.CSS).Each(func(_ int, sel *goquery.Selection) {
		values = append(values, s.value(sel))
	})
	return values
}

func (s Selector) value(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	if s.Attr != "" {
		v, _ := sel.Attr(s.Attr)
		return v
	}
	return sel.Text()
}

// SiteRegistry holds site definitions keyed by name: the embedded defaults,
// then any files in sitesDir, which replace defaults of the same name.
type SiteRegistry struct {
	sitesDir string
	cache    map[string]*Site
	mu       sync.RWMutex
}

func NewSiteRegistry(sitesDir string) *SiteRegistry {
	return &SiteRegistry{
		sitesDir: sitesDir,
		cache:    make(map[string]*Site),
	}
}

func (sr *SiteRegistry) Run() error {
	sub, err := fs.Sub(defaultSites, "sites")
	if err != nil {
		return fmt.Errorf("failed to open embedded sites: %w", err)
	}
	if err := sr.loadFrom(sub, "embedded"); err != nil {
		return err
	}

	if sr.sitesDir == "" {
		return nil
	}
	if _, err := os.Stat(sr.sitesDir); os.IsNotExist(err) {
		slog.Debug("Sites directory not found, using embedded definitions only", "dir", sr.sitesDir)
		return nil
	}

	return sr.loadFrom(os.DirFS(sr.sitesDir), sr.sitesDir)
}

func (sr *SiteRegistry) loadFrom(fsys fs.FS, origin string) error {
	files, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		siteName := strings.TrimSuffix(path.Base(file), ".yml")

		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("error loading %s/%s: %w", origin, file, err)
		}

		site, err := sr.parseSite(siteName, data)
		if err != nil {
			return fmt.Errorf("error loading %s/%s: %w", origin, file, err)
		}

		sr.mu.Lock()
		sr.cache[site.Name] = site
		sr.mu.Unlock()

		slog.Debug("Site definition loaded", "site", site.Name, "hosts", site.Hosts, "origin", origin)
	}

	return nil
}

func (sr *SiteRegistry) parseSite(name string, data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	site.Name = name
	for i, host := range site.Hosts {
		site.Hosts[i] = normalizeHost(host)
	}

	if err := sr.validateSite(&site); err != nil {
		return nil, fmt.Errorf("invalid site %s: %w", name, err)
	}

	return &site, nil
}

func (sr *SiteRegistry) validateSite(site *Site) error {
	if len(site.Hosts) == 0 {
		return fmt.Errorf("at least one host is required")
	}
	for i, host := range site.Hosts {
		if host == "" {
			return fmt.Errorf("empty host at index %d", i)
		}
	}

	requiredSelectors := map[string]Selector{
		"title":        site.Selectors.Title,
		"ingredients":  site.Selectors.Ingredients,
		"instructions": site.Selectors.Instructions,
	}

	for fieldName, selector := range requiredSelectors {
		if selector.Empty() {
			return fmt.Errorf("%s selector is required", fieldName)
		}
	}

	return nil
}

// Lookup finds the site serving host. Subdomains of a listed host match too;
// the longest matching host wins, then the smallest site name.
func (sr *SiteRegistry) Lookup(host string) (*Site, bool) {
	host = normalizeHost(host)

	sr.mu.RLock()
	defer sr.mu.RUnlock()

	var best *Site
	bestLen := 0
	for _, site := range sr.cache {
		for _, h := range site.Hosts {
			if host != h && !strings.HasSuffix(host, "."+h) {
				continue
			}
			if best == nil || len(h) > bestLen || (len(h) == bestLen && site.Name < best.Name) {
				best, bestLen = site, len(h)
			}
		}
	}
	return best, best != nil
}

func (sr *SiteRegistry) GetSiteCount() int {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return len(sr.cache)
}
