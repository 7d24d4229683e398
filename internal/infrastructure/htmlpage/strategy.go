package htmlpage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bnema/sitealert/internal/domain/entity"
)

// LocationStrategy is one heuristic for finding the location text on a page.
// Adapters try strategies in order and keep the first hit.
type LocationStrategy interface {
	Name() string
	Locate(doc *goquery.Document) (string, bool)
}

// Default heuristics for the logistics application's work order page.
var (
	DefaultDataAttributes = []string{"data-site", "data-site-code", "data-location", "data-site-id"}
	DefaultLocationLabels = []string{"Yard Location", "Location", "Site"}
	DefaultSelectors      = []string{".css-86vfqe", "[mdn-text]"}
)

// DataAttributeStrategy reads the location from data attributes.
type DataAttributeStrategy struct {
	Attributes []string
}

// Name implements LocationStrategy.
func (s DataAttributeStrategy) Name() string { return "data-attribute" }

// Locate implements LocationStrategy.
func (s DataAttributeStrategy) Locate(doc *goquery.Document) (string, bool) {
	for _, attr := range s.Attributes {
		if val, ok := doc.Find("[" + attr + "]").First().Attr(attr); ok {
			if val = strings.TrimSpace(val); val != "" {
				return val, true
			}
		}
	}
	return "", false
}

// labelCandidates are the elements that usually carry a field label.
const labelCandidates = "dt, th, label, span, strong, div"

// LabelStrategy finds a labelled field ("Location: RDU1 - PS552") and returns
// the text of the element that follows the label.
type LabelStrategy struct {
	Labels []string
}

// Name implements LocationStrategy.
func (s LabelStrategy) Name() string { return "label" }

// Locate implements LocationStrategy.
func (s LabelStrategy) Locate(doc *goquery.Document) (string, bool) {
	for _, label := range s.Labels {
		var value string
		doc.Find(labelCandidates).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSuffix(collapseSpace(ownText(sel)), ":")
			if !strings.EqualFold(strings.TrimSpace(text), label) {
				return true
			}
			value = collapseSpace(sel.Next().Text())
			return value == ""
		})
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// SelectorStrategy returns the first element matching Selector whose text
// starts with a site code.
type SelectorStrategy struct {
	Selector string
}

// Name implements LocationStrategy.
func (s SelectorStrategy) Name() string { return "selector:" + s.Selector }

// Locate implements LocationStrategy.
func (s SelectorStrategy) Locate(doc *goquery.Document) (string, bool) {
	var value string
	doc.Find(s.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := collapseSpace(sel.Text())
		if _, ok := entity.ExtractSiteCode(text); ok {
			value = text
			return false
		}
		return true
	})
	return value, value != ""
}

// BuildStrategies assembles the strategy chain: data attributes first, then
// labels, then CSS selectors. Empty groups are skipped.
func BuildStrategies(attributes, labels, selectors []string) []LocationStrategy {
	var strategies []LocationStrategy
	if len(attributes) > 0 {
		strategies = append(strategies, DataAttributeStrategy{Attributes: attributes})
	}
	if len(labels) > 0 {
		strategies = append(strategies, LabelStrategy{Labels: labels})
	}
	for _, selector := range selectors {
		if strings.TrimSpace(selector) == "" {
			continue
		}
		strategies = append(strategies, SelectorStrategy{Selector: selector})
	}
	return strategies
}

// DefaultStrategies returns the strategy chain built from the default heuristics.
func DefaultStrategies() []LocationStrategy {
	return BuildStrategies(DefaultDataAttributes, DefaultLocationLabels, DefaultSelectors)
}

// ownText returns the text of sel's direct text nodes, ignoring children.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			b.WriteString(child.Text())
		}
	})
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
