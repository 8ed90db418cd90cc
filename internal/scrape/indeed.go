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

// indeedHosts are tried in order; regional mirrors often respond when the
// main host serves a challenge page.
var indeedHosts = []string{
	"https://sg.indeed.com",
	"https://www.indeed.com",
}

// IndeedAdapter scrapes Indeed search result pages.
type IndeedAdapter struct {
	opts  *Options
	hosts []string
}

// NewIndeedAdapter creates the Indeed source adapter.
func NewIndeedAdapter(opts *Options) *IndeedAdapter {
	if opts == nil {
		opts = DefaultAdapterOptions()
	}
	return &IndeedAdapter{opts: opts, hosts: indeedHosts}
}

// Platform implements Adapter.
func (a *IndeedAdapter) Platform() types.Platform { return types.PlatformIndeed }

// Scrape implements Adapter. Strategy order: the mosaic provider JSON blob
// embedded in the page, then the job card DOM selectors.
func (a *IndeedAdapter) Scrape(ctx context.Context, q Query) ([]types.RawJob, error) {
	var urls []string
	for _, host := range a.hosts {
		urls = append(urls, fmt.Sprintf("%s/jobs?q=%s&l=%s&sort=date",
			host, url.QueryEscape(q.Keywords), url.QueryEscape(q.Location)))
	}

	result, err := fetch.FirstNonEmpty(ctx, urls, nil)
	if err != nil {
		return nil, fmt.Errorf("indeed search: %w", err)
	}

	doc, err := fetch.Document(result.Body)
	if err != nil {
		return nil, fmt.Errorf("indeed parse: %w", err)
	}

	jobs, err := runStrategies(doc, q, []Strategy{
		{Name: "mosaic-json", Extract: a.extractMosaic},
		{Name: "job-cards", Extract: a.extractCards(result.URL)},
	})
	if err != nil {
		return nil, fmt.Errorf("indeed extraction: %w", err)
	}
	if a.opts.Verbose {
		log.Printf("[scrape] indeed: %d records from %s", len(jobs), result.URL)
	}
	return jobs, nil
}

// indeedMosaicResult mirrors the subset of the mosaic provider payload we
// read. Field names follow Indeed's embedded JSON.
type indeedMosaicResult struct {
	Title                string `json:"title"`
	Company              string `json:"company"`
	FormattedLocation    string `json:"formattedLocation"`
	ViewJobLink          string `json:"viewJobLink"`
	Snippet              string `json:"snippet"`
	FormattedRelativeTime string `json:"formattedRelativeTime"`
}

type indeedMosaicPayload struct {
	MetaData struct {
		MosaicProviderJobCardsModel struct {
			Results []indeedMosaicResult `json:"results"`
		} `json:"mosaicProviderJobCardsModel"`
	} `json:"metaData"`
}

func (a *IndeedAdapter) extractMosaic(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	script := scriptContaining(doc, `window.mosaic.providerData["mosaic-provider-jobcards"]`)
	if script == "" {
		return nil, ErrNoMatch
	}
	blob := jsonObjectAfter(script, `window.mosaic.providerData["mosaic-provider-jobcards"]`)
	if blob == "" {
		return nil, ErrNoMatch
	}

	var payload indeedMosaicPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return nil, fmt.Errorf("mosaic payload: %w", err)
	}

	var jobs []types.RawJob
	for _, r := range payload.MetaData.MosaicProviderJobCardsModel.Results {
		job := types.RawJob{
			Role:          r.Title,
			Company:       r.Company,
			URL:           absolutize("https://www.indeed.com/", r.ViewJobLink),
			Location:      r.FormattedLocation,
			Description:   fetch.CleanWhitespace(r.Snippet),
			Platform:      types.PlatformIndeed,
			PostedDaysAgo: parsePostedDaysAgo(r.FormattedRelativeTime),
		}
		if finalize(&job, q) {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (a *IndeedAdapter) extractCards(pageURL string) func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	return func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
		cards := doc.Find(".job_seen_beacon, .result, td.resultContent")
		if cards.Length() == 0 {
			return nil, ErrNoMatch
		}

		var jobs []types.RawJob
		cards.Each(func(_ int, card *goquery.Selection) {
			job := types.RawJob{
				Role: fetch.TextFromSelectors(card, []string{
					"h2.jobTitle span[title]",
					"h2.jobTitle a",
					"h2.jobTitle",
				}),
				Company: fetch.TextFromSelectors(card, []string{
					`[data-testid="company-name"]`,
					".companyName",
					".company",
				}),
				URL: absolutize(pageURL, fetch.AttrFromSelectors(card, []string{
					"h2.jobTitle a",
					"a.jcs-JobTitle",
				}, "href")),
				Location: fetch.TextFromSelectors(card, []string{
					`[data-testid="text-location"]`,
					".companyLocation",
				}),
				Description: fetch.TextFromSelectors(card, []string{
					`[data-testid="jobsnippet_footer"]`,
					".job-snippet",
					".underShelfFooter",
				}),
				Platform: types.PlatformIndeed,
				PostedDaysAgo: parsePostedDaysAgo(fetch.TextFromSelectors(card, []string{
					`[data-testid="myJobsStateDate"]`,
					"span.date",
					".date",
				})),
			}
			if finalize(&job, q) {
				jobs = append(jobs, job)
			}
		})
		return jobs, nil
	}
}
