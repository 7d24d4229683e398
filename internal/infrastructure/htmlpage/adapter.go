// Package htmlpage implements port.PageAdapter over HTML snapshots of the
// work order page, loaded from a file or fetched over HTTP.
package htmlpage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/domain/entity"
	"github.com/bnema/sitealert/internal/logging"
)

var (
	// ErrNoDocument is returned when the adapter has not loaded a page yet.
	ErrNoDocument = errors.New("no document loaded")
	// ErrFetch wraps failures to read the page from its source.
	ErrFetch = errors.New("fetch document")
)

// Page defaults.
const (
	DefaultUnassignedMarker     = "Unassigned"
	DefaultReplacementThreshold = 0.5
)

// Detail page signals, as opposed to a list view.
var (
	DefaultDetailMarkers   = []string{"Service Details", "Equipment Overview", "Service Overview"}
	DefaultDetailSelectors = []string{".css-86vfqe", `[class*="ServiceDetails"]`}
	DefaultDetailPaths     = []string{"/service/", "/details/"}
)

// Options configures the adapter's heuristics.
type Options struct {
	// UnassignedMarker is the exact span text of an unassigned work order.
	UnassignedMarker string
	// Strategies are tried in order to find the location text.
	Strategies []LocationStrategy
	// DetailMarkers are searched in the title and h1-h3 headings.
	DetailMarkers []string
	// DetailSelectors mark a detail page when any of them matches an element.
	DetailSelectors []string
	// DetailPaths mark a detail page when the page URL contains one of them.
	DetailPaths []string
	// RequireDetailPage makes list views count as not unassigned.
	RequireDetailPage bool
	// ReplacementThreshold is the fraction of text lines that must disappear
	// for a content change to count as a replacement.
	ReplacementThreshold float64
}

// DefaultOptions returns the heuristics used by the logistics application.
func DefaultOptions() Options {
	return Options{
		UnassignedMarker:     DefaultUnassignedMarker,
		Strategies:           DefaultStrategies(),
		DetailMarkers:        DefaultDetailMarkers,
		DetailSelectors:      DefaultDetailSelectors,
		DetailPaths:          DefaultDetailPaths,
		ReplacementThreshold: DefaultReplacementThreshold,
	}
}

// snapshot is one parsed version of the page.
type snapshot struct {
	doc      *goquery.Document
	identity string
	hash     string
	lines    []string
}

// Adapter implements port.PageAdapter on top of a DocumentSource.
// Call Refresh to (re)load the page; subscribers learn about the result.
type Adapter struct {
	source port.DocumentSource
	opts   Options

	mu      sync.RWMutex
	current *snapshot

	subMu  sync.Mutex
	nextID port.SubscriptionID
	subs   map[port.SubscriptionID]port.PageChangeCallback
}

var (
	_ port.PageAdapter   = (*Adapter)(nil)
	_ port.PageInspector = (*Adapter)(nil)
)

// NewAdapter creates an adapter. Zero-valued options fall back to the defaults.
func NewAdapter(source port.DocumentSource, opts Options) *Adapter {
	defaults := DefaultOptions()
	if strings.TrimSpace(opts.UnassignedMarker) == "" {
		opts.UnassignedMarker = defaults.UnassignedMarker
	}
	if len(opts.Strategies) == 0 {
		opts.Strategies = defaults.Strategies
	}
	if len(opts.DetailMarkers) == 0 {
		opts.DetailMarkers = defaults.DetailMarkers
	}
	if len(opts.DetailSelectors) == 0 {
		opts.DetailSelectors = defaults.DetailSelectors
	}
	if len(opts.DetailPaths) == 0 {
		opts.DetailPaths = defaults.DetailPaths
	}
	if opts.ReplacementThreshold <= 0 || opts.ReplacementThreshold > 1 {
		opts.ReplacementThreshold = defaults.ReplacementThreshold
	}
	return &Adapter{
		source: source,
		opts:   opts,
		subs:   make(map[port.SubscriptionID]port.PageChangeCallback),
	}
}

// Source returns the adapter's document source.
func (a *Adapter) Source() port.DocumentSource {
	return a.source
}

// Refresh reloads the page from its source. When the content differs from the
// previous load it classifies the change, notifies subscribers and returns it.
// The boolean is false when nothing changed.
func (a *Adapter) Refresh(ctx context.Context) (entity.PageChange, bool, error) {
	log := logging.FromContext(ctx)

	body, err := a.source.Fetch(ctx)
	if err != nil {
		return entity.PageChange{}, false, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return entity.PageChange{}, false, fmt.Errorf("parse html: %w", err)
	}

	next := newSnapshot(doc)

	a.mu.Lock()
	prev := a.current
	change, changed := classify(prev, next, a.opts.ReplacementThreshold)
	if changed {
		a.current = next
	}
	a.mu.Unlock()

	if !changed {
		log.Trace().Str("source", a.source.Location()).Msg("page unchanged")
		return entity.PageChange{}, false, nil
	}

	log.Debug().
		Str("source", a.source.Location()).
		Str("kind", change.Kind.String()).
		Str("identity", change.Identity).
		Msg("page refreshed")
	a.notify(change)
	return change, true, nil
}

// Identity returns the identity of the loaded page.
func (a *Adapter) Identity() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return "", ErrNoDocument
	}
	return a.current.identity, nil
}

// BodyText returns the visible text of the loaded page, one line per entry.
func (a *Adapter) BodyText() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.current == nil {
		return "", ErrNoDocument
	}
	return strings.Join(a.current.lines, "\n"), nil
}

// IsUnassigned implements port.PageAdapter.
func (a *Adapter) IsUnassigned(ctx context.Context) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return false
	}
	doc := a.current.doc

	if a.opts.RequireDetailPage && !a.isDetailPage(a.current) {
		logging.FromContext(ctx).Trace().Msg("not a detail page")
		return false
	}

	found := false
	doc.Find("span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if strings.TrimSpace(sel.Text()) == a.opts.UnassignedMarker {
			found = true
			return false
		}
		return true
	})
	return found
}

// LocationText implements port.PageAdapter.
func (a *Adapter) LocationText(ctx context.Context) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return "", false
	}

	for _, strategy := range a.opts.Strategies {
		if text, ok := strategy.Locate(a.current.doc); ok {
			logging.FromContext(ctx).Trace().
				Str("strategy", strategy.Name()).
				Str("location", text).
				Msg("location found")
			return text, true
		}
	}
	return "", false
}

// SubscribeToChanges implements port.PageAdapter.
func (a *Adapter) SubscribeToChanges(callback port.PageChangeCallback) port.SubscriptionID {
	a.subMu.Lock()
	defer a.subMu.Unlock()

	a.nextID++
	a.subs[a.nextID] = callback
	return a.nextID
}

// Unsubscribe implements port.PageAdapter.
func (a *Adapter) Unsubscribe(id port.SubscriptionID) {
	a.subMu.Lock()
	defer a.subMu.Unlock()
	delete(a.subs, id)
}

// notify copies the subscriber list and invokes callbacks without holding locks.
func (a *Adapter) notify(change entity.PageChange) {
	a.subMu.Lock()
	callbacks := make([]port.PageChangeCallback, 0, len(a.subs))
	for _, cb := range a.subs {
		callbacks = append(callbacks, cb)
	}
	a.subMu.Unlock()

	for _, cb := range callbacks {
		cb(change)
	}
}

// isDetailPage looks for detail markers in the title and headings, then for
// detail-only elements, then for a detail path in the page or source URL.
func (a *Adapter) isDetailPage(snap *snapshot) bool {
	doc := snap.doc
	title := doc.Find("title").First().Text()
	for _, marker := range a.opts.DetailMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}

	found := false
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		for _, marker := range a.opts.DetailMarkers {
			if strings.Contains(text, marker) {
				found = true
				return false
			}
		}
		return true
	})
	if found {
		return true
	}

	for _, selector := range a.opts.DetailSelectors {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}

	for _, url := range []string{snap.identity, a.source.Location()} {
		for _, path := range a.opts.DetailPaths {
			if strings.Contains(url, path) {
				return true
			}
		}
	}
	return false
}

func newSnapshot(doc *goquery.Document) *snapshot {
	lines := textLines(doc)
	h := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return &snapshot{
		doc:      doc,
		identity: pageIdentity(doc),
		hash:     hex.EncodeToString(h[:]),
		lines:    lines,
	}
}

// classify compares two loads of the page. A first load counts as a
// replacement so that any running detection starts from a clean state.
func classify(prev, next *snapshot, threshold float64) (entity.PageChange, bool) {
	change := entity.PageChange{Identity: next.identity}

	switch {
	case prev == nil:
		change.Kind = entity.PageChangeReplacement
	case prev.identity != next.identity:
		change.Kind = entity.PageChangeNavigation
	case prev.hash == next.hash:
		return entity.PageChange{}, false
	case removedFraction(prev.lines, next.lines) > threshold:
		change.Kind = entity.PageChangeReplacement
	default:
		change.Kind = entity.PageChangeMutation
	}
	return change, true
}

// removedFraction is the share of prev's lines that no longer appear in next.
func removedFraction(prev, next []string) float64 {
	if len(prev) == 0 {
		if len(next) == 0 {
			return 0
		}
		return 1
	}
	remaining := make(map[string]int, len(next))
	for _, line := range next {
		remaining[line]++
	}
	removed := 0
	for _, line := range prev {
		if remaining[line] > 0 {
			remaining[line]--
			continue
		}
		removed++
	}
	return float64(removed) / float64(len(prev))
}

// pageIdentity prefers the canonical link, then og:url, then the title.
func pageIdentity(doc *goquery.Document) string {
	if href, ok := doc.Find("link[rel='canonical']").Attr("href"); ok && strings.TrimSpace(href) != "" {
		return strings.TrimSpace(href)
	}
	if ogURL, ok := doc.Find("meta[property='og:url']").Attr("content"); ok && strings.TrimSpace(ogURL) != "" {
		return strings.TrimSpace(ogURL)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// nonContentSelectors lists elements to strip before extracting body text.
const nonContentSelectors = "script, style, noscript"

// textLines returns the page's visible text nodes in document order, with
// whitespace collapsed and empty nodes dropped. Source line breaks play no
// part, so a page served on a single line still yields one entry per node.
func textLines(doc *goquery.Document) []string {
	body := doc.Find("body").First().Clone()
	body.Find(nonContentSelectors).Remove()
	return appendTextNodes(nil, body)
}

func appendTextNodes(lines []string, sel *goquery.Selection) []string {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			if line := collapseSpace(child.Text()); line != "" {
				lines = append(lines, line)
			}
			return
		}
		lines = appendTextNodes(lines, child)
	})
	return lines
}
