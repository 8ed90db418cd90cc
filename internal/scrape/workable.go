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

const (
	workableSearchAPI  = "https://jobs.workable.com/api/v1/jobs?query=%s&location=%s"
	workableSearchPage = "https://jobs.workable.com/search?query=%s&location=%s"
)

// WorkableAdapter queries the Workable public job marketplace.
type WorkableAdapter struct {
	opts       *Options
	searchAPI  string
	searchPage string
}

// NewWorkableAdapter creates the Workable source adapter.
func NewWorkableAdapter(opts *Options) *WorkableAdapter {
	if opts == nil {
		opts = DefaultAdapterOptions()
	}
	return &WorkableAdapter{
		opts:       opts,
		searchAPI:  workableSearchAPI,
		searchPage: workableSearchPage,
	}
}

// Platform implements Adapter.
func (a *WorkableAdapter) Platform() types.Platform { return types.PlatformWorkable }

// Scrape implements Adapter. Strategy order: the public search JSON API,
// then the marketplace search page DOM.
func (a *WorkableAdapter) Scrape(ctx context.Context, q Query) ([]types.RawJob, error) {
	apiURL := fmt.Sprintf(a.searchAPI, url.QueryEscape(q.Keywords), url.QueryEscape(q.Location))
	if jobs, err := a.scrapeAPI(ctx, apiURL, q); err == nil && len(jobs) > 0 {
		if a.opts.Verbose {
			log.Printf("[scrape] workable: %d records from search API", len(jobs))
		}
		return jobs, nil
	}

	pageURL := fmt.Sprintf(a.searchPage, url.QueryEscape(q.Keywords), url.QueryEscape(q.Location))
	result, err := fetch.URL(ctx, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("workable search: %w", err)
	}

	doc, err := fetch.Document(result.Body)
	if err != nil {
		return nil, fmt.Errorf("workable parse: %w", err)
	}

	jobs, err := runStrategies(doc, q, []Strategy{
		{Name: "job-cards", Extract: a.extractCards(result.URL)},
	})
	if err != nil {
		return nil, fmt.Errorf("workable extraction: %w", err)
	}
	if a.opts.Verbose {
		log.Printf("[scrape] workable: %d records from %s", len(jobs), result.URL)
	}
	return jobs, nil
}

type workableAPIJob struct {
	Title       string `json:"title"`
	Company     struct {
		Title string `json:"title"`
	} `json:"company"`
	URL         string `json:"url"`
	Location    struct {
		City    string `json:"city"`
		Country string `json:"country"`
	} `json:"location"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

type workableAPIResponse struct {
	Jobs []workableAPIJob `json:"jobs"`
}

func (a *WorkableAdapter) scrapeAPI(ctx context.Context, apiURL string, q Query) ([]types.RawJob, error) {
	result, err := fetch.URL(ctx, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("workable API: %w", err)
	}

	var resp workableAPIResponse
	if err := json.Unmarshal([]byte(result.Body), &resp); err != nil {
		return nil, fmt.Errorf("workable API payload: %w", err)
	}

	var jobs []types.RawJob
	for _, r := range resp.Jobs {
		loc := r.Location.City
		if loc == "" {
			loc = r.Location.Country
		}
		job := types.RawJob{
			Role:          r.Title,
			Company:       r.Company.Title,
			URL:           r.URL,
			Location:      loc,
			Description:   stripHTMLTags(r.Description),
			Platform:      types.PlatformWorkable,
			PostedDaysAgo: daysSinceISO(r.Created),
		}
		if finalize(&job, q) {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (a *WorkableAdapter) extractCards(pageURL string) func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	return func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
		cards := doc.Find(`li[data-ui="job"], div[data-ui="job-card"]`)
		if cards.Length() == 0 {
			return nil, ErrNoMatch
		}

		var jobs []types.RawJob
		cards.Each(func(_ int, card *goquery.Selection) {
			job := types.RawJob{
				Role: fetch.TextFromSelectors(card, []string{
					`[data-ui="job-title"]`,
					"h2 a",
					"h3 a",
				}),
				Company: fetch.TextFromSelectors(card, []string{
					`[data-ui="company-name"]`,
					`[data-ui="job-company"]`,
				}),
				URL: absolutize(pageURL, fetch.AttrFromSelectors(card, []string{
					`a[data-ui="job-title"]`,
					"h2 a",
					"h3 a",
				}, "href")),
				Location: fetch.TextFromSelectors(card, []string{
					`[data-ui="job-location"]`,
					`[data-ui="location"]`,
				}),
				Description: fetch.TextFromSelectors(card, []string{
					`[data-ui="job-description"]`,
					"p",
				}),
				Platform: types.PlatformWorkable,
				PostedDaysAgo: parsePostedDaysAgo(fetch.TextFromSelectors(card, []string{
					`[data-ui="job-posted"]`,
					"time",
				})),
			}
			if finalize(&job, q) {
				jobs = append(jobs, job)
			}
		})
		return jobs, nil
	}
}
