// Package scoreboard pulls completed games from ESPN's undocumented
// college basketball scoreboard API and reshapes them winner-first.
package scoreboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"cbbsync/lib/telemetry"

	"github.com/go-resty/resty/v2"
)

const scoreboardPath = "/apis/site/v2/sports/basketball/mens-college-basketball/scoreboard"

// groups=50 selects NCAA Division I.
const divisionGroup = "50"

const (
	defaultBaseUrl  = "https://site.api.espn.com"
	defaultPageSize = 200
	defaultTimeout  = time.Second * 20
)

type Client struct {
	http     *resty.Client
	pageSize int
}

type ClientOptions struct {
	// BaseUrl overrides the production API host, used by tests.
	BaseUrl string
	// PageSize is the limit per scoreboard request, defaults to 200.
	PageSize int
	Timeout  time.Duration
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", "Mozilla/5.0 (CBB scraper)")

	telemetry.InstrumentResty(client, "scrapers/scoreboard/http")

	return &Client{http: client, pageSize: pageSize}
}

type scoreboardResponse struct {
	Events []Event `json:"events"`
}

// Event is the raw provider record, kept opaque outside of the fields
// extraction needs.
type Event struct {
	Id           string        `json:"id"`
	Competitions []Competition `json:"competitions"`
}

type Competition struct {
	Status      Status       `json:"status"`
	Competitors []Competitor `json:"competitors"`
	NeutralSite bool         `json:"neutralSite"`
	Venue       Venue        `json:"venue"`
}

type Status struct {
	Type StatusType `json:"type"`
}

type StatusType struct {
	Completed bool `json:"completed"`
}

type Competitor struct {
	HomeAway string `json:"homeAway"`
	Team     Team   `json:"team"`
	Score    string `json:"score"`
}

type Team struct {
	DisplayName string `json:"displayName"`
}

type Venue struct {
	FullName string  `json:"fullName"`
	Address  Address `json:"address"`
}

type Address struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// FetchDay pulls every Division I event for a single eastern-time day
// by paging limit/offset until the provider runs dry. Paging stops on
// an empty page, a page with no unseen event ids, or a short page.
// Overlapping pages are deduplicated by event id.
func (c *Client) FetchDay(ctx context.Context, date time.Time) ([]Event, error) {
	ctx, span := tracer.Start(ctx, "FetchDay")
	defer span.End()

	compact := date.Format("20060102")
	seen := map[string]bool{}
	var all []Event
	offset := 0

	for {
		res, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"dates":  compact,
				"groups": divisionGroup,
				"limit":  strconv.Itoa(c.pageSize),
				"offset": strconv.Itoa(offset),
				"tz":     "America/New_York",
			}).
			SetResult(&scoreboardResponse{}).
			Get(scoreboardPath)
		if err != nil {
			return nil, err
		}
		if res.IsError() {
			return nil, fmt.Errorf(
				"scoreboard returned status %s for date %s",
				res.Status(), compact,
			)
		}

		page := res.Result().(*scoreboardResponse).Events
		if len(page) == 0 {
			break
		}

		unseen := 0
		for _, ev := range page {
			if ev.Id == "" || seen[ev.Id] {
				continue
			}
			seen[ev.Id] = true
			all = append(all, ev)
			unseen++
		}

		if unseen == 0 || len(page) < c.pageSize {
			break
		}
		offset += c.pageSize
	}

	slog.DebugContext(ctx, "scoreboard fetch complete", "date", compact, "events", len(all))
	return all, nil
}
