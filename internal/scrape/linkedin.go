package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/fetch"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

// linkedInEndpoints are tried in order. The guest API returns plain HTML job
// cards without requiring a session; the public search page is the fallback.
var linkedInEndpoints = []string{
	"https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search?keywords=%s&location=%s",
	"https://www.linkedin.com/jobs/search?keywords=%s&location=%s",
}

var linkedInURNRe = regexp.MustCompile(`urn:li:jobPosting:(\d+)`)
var linkedInPathIDRe = regexp.MustCompile(`-(\d+)(?:\?|$)`)

// LinkedInAdapter scrapes LinkedIn guest job search results. It is the only
// adapter that populates the LinkedInID secondary dedup key.
type LinkedInAdapter struct {
	opts      *Options
	endpoints []string
}

// NewLinkedInAdapter creates the LinkedIn source adapter.
func NewLinkedInAdapter(opts *Options) *LinkedInAdapter {
	if opts == nil {
		opts = DefaultAdapterOptions()
	}
	return &LinkedInAdapter{opts: opts, endpoints: linkedInEndpoints}
}

// Platform implements Adapter.
func (a *LinkedInAdapter) Platform() types.Platform { return types.PlatformLinkedIn }

// Scrape implements Adapter. Strategy order: JSON-LD JobPosting entities,
// then the base-card DOM selectors used by both guest endpoints.
func (a *LinkedInAdapter) Scrape(ctx context.Context, q Query) ([]types.RawJob, error) {
	var urls []string
	for _, ep := range a.endpoints {
		urls = append(urls, fmt.Sprintf(ep, url.QueryEscape(q.Keywords), url.QueryEscape(q.Location)))
	}

	result, err := fetch.FirstNonEmpty(ctx, urls, nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin search: %w", err)
	}

	doc, err := fetch.Document(result.Body)
	if err != nil {
		return nil, fmt.Errorf("linkedin parse: %w", err)
	}

	jobs, err := runStrategies(doc, q, []Strategy{
		{Name: "json-ld", Extract: a.extractJSONLD},
		{Name: "base-cards", Extract: a.extractCards},
	})
	if err != nil {
		return nil, fmt.Errorf("linkedin extraction: %w", err)
	}
	if a.opts.Verbose {
		log.Printf("[scrape] linkedin: %d records from %s", len(jobs), result.URL)
	}
	return jobs, nil
}

// jsonLDJobPosting mirrors the schema.org JobPosting entity that LinkedIn
// and Glassdoor embed in search pages.
type jsonLDJobPosting struct {
	Type               string `json:"@type"`
	Title              string `json:"title"`
	DatePosted         string `json:"datePosted"`
	Description        string `json:"description"`
	URL                string `json:"url"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
	JobLocation struct {
		Address struct {
			AddressLocality string `json:"addressLocality"`
		} `json:"address"`
	} `json:"jobLocation"`
}

func (a *LinkedInAdapter) extractJSONLD(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	var jobs []types.RawJob
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var entity jsonLDJobPosting
		if err := json.Unmarshal([]byte(s.Text()), &entity); err != nil {
			return
		}
		if entity.Type != "JobPosting" {
			return
		}
		job := types.RawJob{
			Role:          entity.Title,
			Company:       entity.HiringOrganization.Name,
			URL:           entity.URL,
			Location:      entity.JobLocation.Address.AddressLocality,
			Description:   stripHTMLTags(entity.Description),
			Platform:      types.PlatformLinkedIn,
			LinkedInID:    linkedInIDFromURL(entity.URL),
			PostedDaysAgo: daysSinceISO(entity.DatePosted),
		}
		if finalize(&job, q) {
			jobs = append(jobs, job)
		}
	})
	if len(jobs) == 0 {
		return nil, ErrNoMatch
	}
	return jobs, nil
}

func (a *LinkedInAdapter) extractCards(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	cards := doc.Find("div.base-card, li div.base-search-card")
	if cards.Length() == 0 {
		return nil, ErrNoMatch
	}

	var jobs []types.RawJob
	cards.Each(func(_ int, card *goquery.Selection) {
		jobURL := fetch.AttrFromSelectors(card, []string{
			"a.base-card__full-link",
			"a.base-search-card__full-link",
			"h3 a",
		}, "href")

		id := ""
		if urn, ok := card.Attr("data-entity-urn"); ok {
			if m := linkedInURNRe.FindStringSubmatch(urn); m != nil {
				id = m[1]
			}
		}
		if id == "" {
			id = linkedInIDFromURL(jobURL)
		}

		postedText := fetch.TextFromSelectors(card, []string{
			"time.job-search-card__listdate--new",
			"time.job-search-card__listdate",
			"time",
		})
		posted := parsePostedDaysAgo(postedText)
		if posted == nil {
			if dt := fetch.AttrFromSelectors(card, []string{"time"}, "datetime"); dt != "" {
				posted = daysSinceISO(dt)
			}
		}

		job := types.RawJob{
			Role: fetch.TextFromSelectors(card, []string{
				"h3.base-search-card__title",
				".base-search-card__title",
			}),
			Company: fetch.TextFromSelectors(card, []string{
				"h4.base-search-card__subtitle",
				".base-search-card__subtitle a",
			}),
			URL: jobURL,
			Location: fetch.TextFromSelectors(card, []string{
				"span.job-search-card__location",
				".job-search-card__location",
			}),
			Platform:      types.PlatformLinkedIn,
			LinkedInID:    id,
			PostedDaysAgo: posted,
		}
		if finalize(&job, q) {
			jobs = append(jobs, job)
		}
	})
	return jobs, nil
}

// linkedInIDFromURL pulls the numeric posting ID out of a job URL like
// .../jobs/view/product-owner-at-acme-3791234567.
func linkedInIDFromURL(jobURL string) string {
	if jobURL == "" {
		return ""
	}
	parsed, err := url.Parse(jobURL)
	if err != nil {
		return ""
	}
	if m := linkedInPathIDRe.FindStringSubmatch(parsed.Path); m != nil {
		return m[1]
	}
	return ""
}

// daysSinceISO converts an ISO date string into whole days before now.
func daysSinceISO(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s[:min(len(s), 10)])
	if err != nil {
		return nil
	}
	days := int(time.Since(t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return &days
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// stripHTMLTags flattens an HTML description into plain text.
func stripHTMLTags(s string) string {
	return fetch.CleanWhitespace(htmlTagRe.ReplaceAllString(s, " "))
}
