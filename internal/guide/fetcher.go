// Package guide scrapes the vendor migration planning guide: the paragraphs of
// a seed page plus the paragraphs of the same-site pages it links to.
package guide

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dgallion1/sowgen/internal/memo"
	"github.com/dgallion1/sowgen/internal/textnorm"
	"github.com/rotisserie/eris"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	// MaxFragments caps how many paragraphs end up in the returned text.
	MaxFragments = 1000

	DefaultSeedURL       = "https://www.oracle.com/database/cloud-migration/"
	DefaultOrigin        = "https://www.oracle.com"
	DefaultSubpath       = "oracle.com/database/cloud-migration/"
	DefaultContentRegion = "article"
)

// Fetcher retrieves guide text. Safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	origin  string
	subpath string
	region  string
	limiter *rate.Limiter
	cache   *memo.Cache[string]
	log     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client = &http.Client{Timeout: d}
	}
}

// WithOrigin sets the site origin used to resolve root-relative links.
func WithOrigin(origin string) Option {
	return func(f *Fetcher) {
		f.origin = strings.TrimSuffix(origin, "/")
	}
}

// WithSubpath sets the known same-site path a sublink may fall under
// besides the seed itself.
func WithSubpath(subpath string) Option {
	return func(f *Fetcher) {
		f.subpath = subpath
	}
}

// WithContentRegion sets the selector of the main content region. An empty
// selector keeps the default.
func WithContentRegion(selector string) Option {
	return func(f *Fetcher) {
		if selector != "" {
			f.region = selector
		}
	}
}

// WithRateLimit spaces requests to at most rps per second. Zero or negative
// disables limiting.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCache turns per-seed memoization on or off. On by default.
func WithCache(enabled bool) Option {
	return func(f *Fetcher) {
		if enabled {
			f.cache = memo.New[string]()
		} else {
			f.cache = nil
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fetcher) {
		f.log = log
	}
}

// NewFetcher creates a Fetcher pointed at the Oracle cloud migration guide.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		origin:  DefaultOrigin,
		subpath: DefaultSubpath,
		region:  DefaultContentRegion,
		cache:   memo.New[string](),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the seed page's paragraphs followed by the paragraphs of every
// kept sublink, one per line, capped at MaxFragments. Only a failure on the
// seed request is reported; sublinks that fail are left out.
func (f *Fetcher) Fetch(ctx context.Context, seedURL string) (string, error) {
	return f.cache.Do(seedURL, func() (string, error) {
		return f.fetch(ctx, seedURL)
	})
}

// FetchText is Fetch with failures rendered as a readable message in place of
// the guide text.
func (f *Fetcher) FetchText(ctx context.Context, seedURL string) string {
	text, err := f.Fetch(ctx, seedURL)
	if err != nil {
		return fmt.Sprintf("Could not fetch guide content: %s", err)
	}
	return text
}

func (f *Fetcher) fetch(ctx context.Context, seedURL string) (string, error) {
	doc, err := f.get(ctx, seedURL)
	if err != nil {
		return "", err
	}

	fragments := f.paragraphs(doc)
	links := f.sublinks(doc, seedURL)
	for _, link := range links {
		sub, err := f.get(ctx, link)
		if err != nil {
			f.log.Debug("sublink skipped", "url", link, "error", err)
			continue
		}
		fragments = append(fragments, f.paragraphs(sub)...)
	}

	f.log.Info("guide fetched", "seed", seedURL, "sublinks", len(links), "fragments", len(fragments))

	if len(fragments) > MaxFragments {
		fragments = fragments[:MaxFragments]
	}
	return strings.Join(fragments, "\n"), nil
}

// get retrieves and parses one page. 4xx and 5xx responses are failures.
func (f *Fetcher) get(ctx context.Context, url string) (*goquery.Document, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "rate limit")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "build request for %s", url)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "get %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, eris.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	root, err := html.Parse(resp.Body)
	if err != nil {
		return nil, eris.Wrapf(err, "parse html from %s", url)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// paragraphs returns the stripped text of every paragraph inside the content
// region, in document order. Empty paragraphs are kept.
func (f *Fetcher) paragraphs(doc *goquery.Document) []string {
	var out []string
	doc.Find(f.region + " p").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strippedText(s))
	})
	return out
}

// strippedText trims each descendant text node and joins them with nothing,
// so "<p>Use <b>ZDM</b> now</p>" reads "UseZDMnow". Comments are skipped.
func strippedText(s *goquery.Selection) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(textnorm.Normalize(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return sb.String()
}

// sublinks collects anchors in the content region that point under the seed
// or under the known subpath. Root-relative hrefs are prefixed with the
// origin; other hrefs are matched as written. Duplicates are dropped.
func (f *Fetcher) sublinks(doc *goquery.Document, seedURL string) []string {
	seen := make(map[string]bool)
	var links []string
	doc.Find(f.region + " a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "/") {
			href = f.origin + href
		}
		underSeed := strings.Contains(href, seedURL)
		underSubpath := f.subpath != "" && strings.Contains(href, f.subpath)
		if !underSeed && !underSubpath {
			return
		}
		if seen[href] {
			return
		}
		seen[href] = true
		links = append(links, href)
	})
	return links
}
