package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/fetch"
	"github.com/Amretha-Karthikeyan/job-hunt-app/internal/types"
)

var jobStreetHosts = []string{
	"https://www.jobstreet.com.sg",
	"https://sg.jobstreet.com",
}

// JobStreetAdapter scrapes JobStreet search result pages.
type JobStreetAdapter struct {
	opts  *Options
	hosts []string
}

// NewJobStreetAdapter creates the JobStreet source adapter.
func NewJobStreetAdapter(opts *Options) *JobStreetAdapter {
	if opts == nil {
		opts = DefaultAdapterOptions()
	}
	return &JobStreetAdapter{opts: opts, hosts: jobStreetHosts}
}

// Platform implements Adapter.
func (a *JobStreetAdapter) Platform() types.Platform { return types.PlatformJobStreet }

// Scrape implements Adapter. Strategy order: the SEEK redux state blob
// (JobStreet runs on the SEEK platform), then data-automation DOM selectors.
func (a *JobStreetAdapter) Scrape(ctx context.Context, q Query) ([]types.RawJob, error) {
	keywords := strings.ReplaceAll(strings.TrimSpace(q.Keywords), " ", "-")
	var urls []string
	for _, host := range a.hosts {
		urls = append(urls, fmt.Sprintf("%s/%s-jobs?where=%s&sortmode=ListedDate",
			host, url.PathEscape(keywords), url.QueryEscape(q.Location)))
	}

	result, err := fetch.FirstNonEmpty(ctx, urls, nil)
	if err != nil {
		return nil, fmt.Errorf("jobstreet search: %w", err)
	}

	doc, err := fetch.Document(result.Body)
	if err != nil {
		return nil, fmt.Errorf("jobstreet parse: %w", err)
	}

	jobs, err := runStrategies(doc, q, []Strategy{
		{Name: "seek-redux", Extract: a.extractRedux(result.URL)},
		{Name: "data-automation", Extract: a.extractCards(result.URL)},
	})
	if err != nil {
		return nil, fmt.Errorf("jobstreet extraction: %w", err)
	}
	if a.opts.Verbose {
		log.Printf("[scrape] jobstreet: %d records from %s", len(jobs), result.URL)
	}
	return jobs, nil
}

type seekReduxJob struct {
	ID            json.Number `json:"id"`
	Title         string      `json:"title"`
	Teaser        string      `json:"teaser"`
	ListingDate   string      `json:"listingDate"`
	Advertiser    struct {
		Description string `json:"description"`
	} `json:"advertiser"`
	Location string `json:"location"`
	JobURL   string `json:"jobUrl"`
}

type seekReduxState struct {
	Results struct {
		Results struct {
			Jobs []seekReduxJob `json:"jobs"`
		} `json:"results"`
	} `json:"results"`
}

func (a *JobStreetAdapter) extractRedux(pageURL string) func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	return func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
		script := scriptContaining(doc, "window.SEEK_REDUX_DATA")
		if script == "" {
			return nil, ErrNoMatch
		}
		blob := jsonObjectAfter(script, "window.SEEK_REDUX_DATA")
		if blob == "" {
			return nil, ErrNoMatch
		}

		var state seekReduxState
		if err := json.Unmarshal([]byte(blob), &state); err != nil {
			return nil, fmt.Errorf("redux state: %w", err)
		}

		var jobs []types.RawJob
		for _, r := range state.Results.Results.Jobs {
			jobURL := r.JobURL
			if jobURL == "" && r.ID.String() != "" {
				jobURL = absolutize(pageURL, "/job/"+r.ID.String())
			}
			job := types.RawJob{
				Role:          r.Title,
				Company:       r.Advertiser.Description,
				URL:           jobURL,
				Location:      r.Location,
				Description:   fetch.CleanWhitespace(r.Teaser),
				Platform:      types.PlatformJobStreet,
				PostedDaysAgo: daysSinceISO(r.ListingDate),
			}
			if finalize(&job, q) {
				jobs = append(jobs, job)
			}
		}
		return jobs, nil
	}
}

func (a *JobStreetAdapter) extractCards(pageURL string) func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
	return func(doc *goquery.Document, q Query) ([]types.RawJob, error) {
		cards := doc.Find(`article[data-automation="normalJob"], article[data-card-type="JobCard"]`)
		if cards.Length() == 0 {
			return nil, ErrNoMatch
		}

		var jobs []types.RawJob
		cards.Each(func(_ int, card *goquery.Selection) {
			job := types.RawJob{
				Role: fetch.TextFromSelectors(card, []string{
					`a[data-automation="jobTitle"]`,
					`[data-automation="jobTitle"]`,
					"h3 a",
				}),
				Company: fetch.TextFromSelectors(card, []string{
					`a[data-automation="jobCompany"]`,
					`[data-automation="jobCompany"]`,
				}),
				URL: absolutize(pageURL, fetch.AttrFromSelectors(card, []string{
					`a[data-automation="jobTitle"]`,
					`a[data-automation="job-list-view-job-link"]`,
					"h3 a",
				}, "href")),
				Location: fetch.TextFromSelectors(card, []string{
					`[data-automation="jobLocation"]`,
					`[data-automation="jobCardLocation"]`,
				}),
				Description: fetch.TextFromSelectors(card, []string{
					`[data-automation="jobShortDescription"]`,
					`[data-automation="jobTeaser"]`,
				}),
				Platform: types.PlatformJobStreet,
				PostedDaysAgo: parsePostedDaysAgo(fetch.TextFromSelectors(card, []string{
					`[data-automation="jobListingDate"]`,
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
