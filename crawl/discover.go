// Package crawl provides URL discovery for --all mode.
// It discovers internal pages via sitemap.xml and link extraction from
// both HTML pages and dialect sources, keeping crawling logic separate
// from the conversion pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/pygmalion/core"
	"github.com/gaurav-prasanna/pygmalion/core/parse"
)

// DefaultLimit caps the number of pages a crawl returns.
const DefaultLimit = 100

// sitemapURL holds a <loc> entry from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// sitemapDoc covers both <urlset> and <sitemapindex> roots.
type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []sitemapURL `xml:"url"`
	Sitemaps []sitemapURL `xml:"sitemap"`
}

// Discoverer finds the internal pages of a site.
type Discoverer struct {
	Fetcher core.Fetcher
	// Limit caps the number of URLs returned; <= 0 means DefaultLimit.
	Limit int
}

// NewDiscoverer creates a Discoverer that fetches through f.
func NewDiscoverer(f core.Fetcher, limit int) *Discoverer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Discoverer{Fetcher: f, Limit: limit}
}

// Discover finds all internal URLs to process starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling.
// The baseURL itself is always the first entry.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	domain := parsed.Host

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, domain)
	if urls, err := d.fromSitemap(ctx, sitemap, domain); err == nil && len(urls) > 0 {
		q := NewQueue()
		q.Add(NormalizeURL(baseURL))
		for _, u := range urls {
			if q.Seen() >= d.limit() {
				break
			}
			q.Add(u)
		}
		return q.All(), nil
	}

	return d.fromLinks(ctx, baseURL, domain)
}

func (d *Discoverer) limit() int {
	if d.Limit <= 0 {
		return DefaultLimit
	}
	return d.Limit
}

// fromSitemap fetches and parses sitemap.xml, following one level of
// sitemap index.
func (d *Discoverer) fromSitemap(ctx context.Context, sitemapURL string, domain string) ([]string, error) {
	sm, err := d.fetchSitemap(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	entries := sm.URLs
	for _, child := range sm.Sitemaps {
		if !IsSameDomain(child.Loc, domain) {
			continue
		}
		nested, err := d.fetchSitemap(ctx, strings.TrimSpace(child.Loc))
		if err != nil {
			continue
		}
		entries = append(entries, nested.URLs...)
	}

	var urls []string
	for _, u := range entries {
		loc := strings.TrimSpace(u.Loc)
		if IsSameDomain(loc, domain) && !IsStaticAsset(loc) {
			urls = append(urls, NormalizeURL(loc))
		}
	}
	return urls, nil
}

func (d *Discoverer) fetchSitemap(ctx context.Context, sitemapURL string) (*sitemapDoc, error) {
	result, err := d.Fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	var sm sitemapDoc
	if err := xml.Unmarshal([]byte(result.Body), &sm); err != nil {
		return nil, fmt.Errorf("parsing sitemap: %w", err)
	}
	return &sm, nil
}

// fromLinks performs BFS crawling to find internal links.
func (d *Discoverer) fromLinks(ctx context.Context, startURL string, domain string) ([]string, error) {
	queue := NewQueue()
	queue.Add(NormalizeURL(startURL))
	limit := d.limit()

	for queue.HasNext() && queue.Processed() < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		currentURL := queue.Next()

		result, err := d.Fetcher.Fetch(ctx, currentURL)
		if err != nil {
			if queue.Processed() == 1 {
				return nil, fmt.Errorf("fetching start page: %w", err)
			}
			continue // Skip failed pages, don't block the crawl.
		}

		links, err := pageLinks(result, currentURL)
		if err != nil {
			continue
		}

		for _, link := range links {
			if queue.Seen() >= limit {
				break
			}
			if IsSameDomain(link, domain) && !IsStaticAsset(link) {
				queue.Add(NormalizeURL(link))
			}
		}
	}

	return queue.All(), nil
}

// pageLinks extracts links from a fetched page, using the dialect parser for
// markup sources and goquery for everything else.
func pageLinks(result *core.FetchResult, pageURL string) ([]string, error) {
	if IsMarkupURL(pageURL) || !IsHTMLType(result.ContentType) {
		return markupLinks(result.Body, pageURL)
	}
	return extractLinks(result.Body, pageURL)
}

// markupLinks collects link destinations from a dialect source.
func markupLinks(source string, baseURL string) ([]string, error) {
	doc, err := parse.Parse(source)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	_ = core.Walk(doc, func(_ int, b core.Block) error {
		core.WalkInlines(core.BlockInlines(b), func(in core.Inline) bool {
			if l, ok := in.(*core.Link); ok {
				if resolved := resolveURL(l.URL, base); resolved != "" {
					links = append(links, resolved)
				}
			}
			return true
		})
		return nil
	})
	return links, nil
}

// extractLinks extracts all href values from <a> tags, resolving relative URLs.
func extractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if b, err := url.Parse(href); err == nil {
			base = base.ResolveReference(b)
		}
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveURL(href, base); resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base.
// Non-navigational schemes and bare fragments yield "".
func resolveURL(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
