package main

import (
	"fmt"
	"time"

	"github.com/mwalter/cardcrawl"
	cardgoquery "github.com/mwalter/cardcrawl/goquery"
)

// SourceEntry pairs a source description with the extractor that parses
// its card markup and the default artifact path.
type SourceEntry struct {
	Source     *cardcrawl.Source
	Extractor  cardcrawl.CardExtractor
	DefaultOut string
}

// DefaultCatalog returns the built-in sources.
func DefaultCatalog() []*SourceEntry {
	return []*SourceEntry{
		membersSource(),
		registrySource(),
	}
}

// findSource returns the catalog entry with the given name.
func findSource(catalog []*SourceEntry, name string) (*SourceEntry, error) {
	for _, entry := range catalog {
		if entry.Source.Name == name {
			return entry, nil
		}
	}
	return nil, cardcrawl.Errorf(cardcrawl.ENOTFOUND, "unknown source %q. Run 'cardcrawl sources' to list sources", name)
}

// membersSource is the association members directory: a click-paginated
// listing of member cards whose fields are tagged by icon classes.
func membersSource() *SourceEntry {
	return &SourceEntry{
		Source: &cardcrawl.Source{
			Name:             "members",
			StartURL:         "https://aria.org.in/members-directory/",
			Pager:            cardcrawl.PagerClick,
			Columns:          []string{"type", "name", "company", "mobile_no", "email", "website"},
			RequiredAny:      []string{"name", "email"},
			PhoneColumns:     []string{"mobile_no"},
			KeyColumns:       []string{"email", "mobile_no", "name"},
			PageLinkSelector: "a.page-link[data-page]",
			DefaultPageCount: 14,
			CardSelector:     "div.card.member-card",
			SettleDelay:      1700 * time.Millisecond,
		},
		Extractor: cardgoquery.NewIconCardExtractor(cardgoquery.IconCardConfig{
			Card:          "div.card.member-card",
			Title:         ".itemtitle",
			TitleField:    "name",
			Category:      ".membercategory",
			CategoryField: "type",
			Item:          "ul.member-listgroup li.member-listgroup-item",
			Icon:          "i",
			Fields: []cardgoquery.IconField{
				{Field: "company", Icon: "bi-briefcase", Lookups: []cardgoquery.Lookup{
					{Selector: "h6.title"},
				}},
				{Field: "mobile_no", Icon: "bi-phone", Phone: true, Lookups: []cardgoquery.Lookup{
					{Selector: "h6.title"},
				}},
				{Field: "email", Icon: "bi-envelope", Lookups: []cardgoquery.Lookup{
					{Selector: "a[href^='mailto:']"},
					{Selector: "h6.title"},
				}},
				{Field: "website", Icon: "bi-globe2", Lookups: []cardgoquery.Lookup{
					{Selector: "a[href^='http']", Attr: "href"},
				}},
			},
		}),
		DefaultOut: "members.xlsx",
	}
}

// registrySource is the regulator's registrant search: a script-paginated
// listing faceted by initial letter, with label/value card markup and a
// "<start> to <end> of <total> records" indicator.
func registrySource() *SourceEntry {
	facets := []string{"A1"}
	for c := 'A'; c <= 'Z'; c++ {
		facets = append(facets, string(c))
	}

	return &SourceEntry{
		Source: &cardcrawl.Source{
			Name:     "registry",
			StartURL: "https://www.sebi.gov.in/sebiweb/other/OtherAction.do?doRecognisedFpi=yes&intmId=13",
			Pager:    cardcrawl.PagerScript,
			Columns: []string{
				"Name", "Registration No.", "E-mail", "Telephone", "Fax No.",
				"Address", "Contact Person", "Correspondence Address", "Validity",
			},
			Synonyms: map[string]string{
				"Email":           "E-mail",
				"Email ID":        "E-mail",
				"Fax":             "Fax No.",
				"Registration No": "Registration No.",
			},
			RequiredAny:        []string{"Name", "Registration No."},
			PhoneColumns:       []string{"Telephone", "Fax No."},
			Facets:             facets,
			PageFunc:           "searchFormFpi",
			FacetFunc:          "searchFormFpiAlp",
			PageAnchorSelector: "div.pagination_outer ul li a",
			IndicatorSelector:  "div.pagination_inner p",
			CardSelector:       "div.fixed-table-body.card-table",
			SettleDelay:        800 * time.Millisecond,
			VerifyTimeout:      15 * time.Second,
		},
		Extractor: cardgoquery.NewLabelValueExtractor(cardgoquery.LabelValueConfig{
			Card:  "div.fixed-table-body.card-table",
			Item:  "div.card-view",
			Label: "div.title span",
			Value: "div.value span",
		}),
		DefaultOut: "registry.xlsx",
	}
}

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	for _, entry := range deps.Catalog {
		fmt.Fprintf(deps.Stdout, "%-10s %-7s %s\n",
			entry.Source.Name, entry.Source.Pager, entry.Source.StartURL)
	}
	return nil
}
