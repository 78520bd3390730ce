// Package goquery provides CSS-selector based card extraction from rendered
// listing pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mwalter/cardcrawl"
)

// Lookup is one strategy for locating a field's value inside a card
// sub-item: a selector plus an optional attribute to read. An empty Attr
// reads the element's text.
type Lookup struct {
	Selector string
	Attr     string
}

// IconField describes one field of an icon-marker card layout: the icon
// class that tags the sub-item and the ordered lookups tried against it.
// The first lookup yielding a non-empty value wins; exhausting the list
// yields "".
type IconField struct {
	Field   string
	Icon    string
	Lookups []Lookup

	// Phone collapses internal whitespace in the value, preserving a
	// leading plus sign.
	Phone bool
}

// IconCardConfig describes the icon-marker card layout: a title and
// category located by fixed selectors, and labeled sub-items tagged by
// icon classes.
type IconCardConfig struct {
	Card          string // card container selector
	Title         string // title element within a card
	TitleField    string // raw field name the title is emitted under
	Category      string // category element within a card
	CategoryField string // raw field name the category is emitted under
	Item          string // labeled sub-item selector within a card
	Icon          string // icon element selector within a sub-item
	Fields        []IconField
}

// Ensure extractors implement cardcrawl.CardExtractor at compile time.
var (
	_ cardcrawl.CardExtractor = (*IconCardExtractor)(nil)
	_ cardcrawl.CardExtractor = (*LabelValueExtractor)(nil)
)

// IconCardExtractor extracts cards whose sub-items are tagged by icon
// marker classes (briefcase = company, phone = contact number, and so on).
// Every lookup is best-effort: a missing element yields an empty string
// for that field, never an error.
type IconCardExtractor struct {
	Config IconCardConfig
}

// NewIconCardExtractor creates an IconCardExtractor for the given layout.
func NewIconCardExtractor(config IconCardConfig) *IconCardExtractor {
	return &IconCardExtractor{Config: config}
}

// Extract returns one RawCard per card element. Each card carries every
// configured field key.
func (e *IconCardExtractor) Extract(html string) ([]cardcrawl.RawCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cardcrawl.Errorf(cardcrawl.EINVALID, "failed to parse content: %v", err)
	}

	cfg := e.Config
	var cards []cardcrawl.RawCard

	doc.Find(cfg.Card).Each(func(_ int, card *goquery.Selection) {
		raw := cardcrawl.RawCard{}
		if cfg.TitleField != "" {
			raw[cfg.TitleField] = text(card.Find(cfg.Title).First())
		}
		if cfg.CategoryField != "" {
			raw[cfg.CategoryField] = text(card.Find(cfg.Category).First())
		}

		for _, field := range cfg.Fields {
			value := e.fieldValue(card, field)
			if field.Phone {
				value = cardcrawl.CollapsePhone(value)
			}
			raw[field.Field] = value
		}

		cards = append(cards, raw)
	})

	return cards, nil
}

// fieldValue finds the sub-item tagged by the field's icon class and runs
// the field's lookups against it in order.
func (e *IconCardExtractor) fieldValue(card *goquery.Selection, field IconField) string {
	value := ""
	card.Find(e.Config.Item).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		icon := item.Find(e.Config.Icon).First()
		if icon.Length() == 0 || !icon.HasClass(field.Icon) {
			return true
		}
		for _, lookup := range field.Lookups {
			sel := item.Find(lookup.Selector).First()
			if sel.Length() == 0 {
				continue
			}
			var v string
			if lookup.Attr != "" {
				v, _ = sel.Attr(lookup.Attr)
				v = strings.TrimSpace(v)
			} else {
				v = text(sel)
			}
			if v != "" {
				value = v
				break
			}
		}
		// First sub-item carrying the icon decides the field.
		return false
	})
	return value
}

// LabelValueConfig describes the label/value card layout: sub-items
// carrying an explicit title text and value text.
type LabelValueConfig struct {
	Card  string // card container selector
	Item  string // label/value sub-item selector within a card
	Label string // label element within a sub-item
	Value string // value element within a sub-item
}

// LabelValueExtractor extracts cards whose sub-items carry explicit
// label and value texts, to be matched against a synonym table during
// normalization.
type LabelValueExtractor struct {
	Config LabelValueConfig
}

// NewLabelValueExtractor creates a LabelValueExtractor for the given
// layout.
func NewLabelValueExtractor(config LabelValueConfig) *LabelValueExtractor {
	return &LabelValueExtractor{Config: config}
}

// Extract returns one RawCard per card element, mapping each sub-item's
// label text to its value text. Sub-items lacking a label are skipped.
func (e *LabelValueExtractor) Extract(html string) ([]cardcrawl.RawCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cardcrawl.Errorf(cardcrawl.EINVALID, "failed to parse content: %v", err)
	}

	cfg := e.Config
	var cards []cardcrawl.RawCard

	doc.Find(cfg.Card).Each(func(_ int, card *goquery.Selection) {
		raw := cardcrawl.RawCard{}
		card.Find(cfg.Item).Each(func(_ int, item *goquery.Selection) {
			label := text(item.Find(cfg.Label).First())
			if label == "" {
				return
			}
			raw[label] = text(item.Find(cfg.Value).First())
		})
		cards = append(cards, raw)
	})

	return cards, nil
}

func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
