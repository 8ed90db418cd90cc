package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/fetch"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

var glassdoorHosts = []string{
	"https://www.glassdoor.sg",
	"https://www.glassdoor.com",
}

// GlassdoorAdapter scrapes Glassdoor job search pages. Glassdoor is the most
// aggressively bot-protected of the supported boards, so both strategies are
// expected to degrade silently on challenge pages.
type GlassdoorAdapter struct {
	opts  *Options
	hosts []string
}

// NewGlassdoorAdapter creates the Glassdoor source adapter.
func NewGlassdoorAdapter(opts *Options) *GlassdoorAdapter {
	if opts == nil {
		opts = DefaultAdapterOptions()
	}
	return &GlassdoorAdapter{opts: opts, hosts: glassdoorHosts}
}

// Platform implements Adapter.
func (a *GlassdoorAdapter) Platform() types.Platform { return types.PlatformGlassdoor }

// Scrape implements Adapter. Strategy order: JSON-LD JobPosting entities,
// then the job card DOM selectors.
func (a *GlassdoorAdapter) Scrape(ctx context.Context, q Query) ([]types.RawJob, error) {
	var urls []string
	for _, host := range a.hosts {
		urls = append(urls, fmt.Sprintf("%s/Job/jobs.htm?sc.keyword=%s&locKeyword=%s",
			host, url.QueryEscape(q.Keywords), url.QueryEscape(q.Location)))
	}

	result, err := fetch.FirstNonEmpty(ctx, urls, nil)
	if err != nil {
		return nil, fmt.Errorf("glassdoor search: %w", err)
	}

	body := result.Body
	if a.opts.UseBrowser && fetch.ShouldUseBrowser(body) {
		if rendered, berr := fetch.WithBrowser(ctx, result.URL, fetch.DefaultTimeout); berr == nil {
			body = rendered
		}
	}

	doc, err := fetch.Document(body)
	if err != nil {
		return nil, fmt.Errorf("glassdoor parse: %w", err)
	}

	jobs, err := runStrategies(doc, q, []Strategy{
		{Name: "json-ld", Extract: a.extractJSONLD},
		{Name: "job-cards", Extract: a.extractCards(result.URL)},
	})
	if err != nil {
		return nil, fmt.Errorf("glassdoor extraction: %w", err)
	}
	if a.opts.Verbose {
		log.Printf("[scrape] glassdoor: %d records from %s", len(jobs), result.URL)
	}
	return jobs, nil
}

func (a *GlassdoorAdapter) extractJSONLD(doc *goquery.Document, q Query) ([]types.RawJob, error) {
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
			Platform:      types.PlatformGlassdoor,
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

func (a *GlassdoorAdapter) extractCards(pageURL string) func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	return func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
		cards := doc.Find(`li[data-test="jobListing"], article[data-test="job-card"]`)
		if cards.Length() == 0 {
			return nil, ErrNoMatch
		}

		var jobs []types.RawJob
		cards.Each(func(_ int, card *goquery.Selection) {
			job := types.RawJob{
				Role: fetch.TextFromSelectors(card, []string{
					`a[data-test="job-title"]`,
					`[data-test="job-title"]`,
					".jobTitle",
				}),
				Company: fetch.TextFromSelectors(card, []string{
					`[data-test="employer-short-name"]`,
					`span[class*="EmployerProfile_compactEmployerName"]`,
					".employerName",
				}),
				URL: absolutize(pageURL, fetch.AttrFromSelectors(card, []string{
					`a[data-test="job-title"]`,
					"a.jobLink",
				}, "href")),
				Location: fetch.TextFromSelectors(card, []string{
					`[data-test="emp-location"]`,
					".location",
				}),
				Description: fetch.TextFromSelectors(card, []string{
					`[data-test="descSnippet"]`,
					`div[class*="JobCard_jobDescriptionSnippet"]`,
				}),
				Platform: types.PlatformGlassdoor,
				PostedDaysAgo: parsePostedDaysAgo(fetch.TextFromSelectors(card, []string{
					`[data-test="job-age"]`,
					".listing-age",
				})),
			}
			if finalize(&job, q) {
				jobs = append(jobs, job)
			}
		})
		return jobs, nil
	}
}
