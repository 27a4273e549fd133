// Package kenpom logs into kenpom.com with a subscriber account and
// pulls the efficiency summary table.
package kenpom

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"strconv"
	"time"

	"cbbsync/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/kenpom")

var ErrLoginFailed = fmt.Errorf("failed to login to kenpom, check your credentials")

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// BaseUrl overrides the production site, used by tests.
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://kenpom.com"
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "scrapers/kenpom/http")

	return &Client{http: client}, nil
}

// Login obtains an authenticated session for the given subscriber
// credentials. The session lives in the client's cookie jar, one login
// per run covers every subsequent fetch.
func (c *Client) Login(ctx context.Context, email, password string) error {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	// prime the session cookie before posting the form
	_, err := c.http.R().
		SetContext(ctx).
		Get("/index.php")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"email":    email,
			"password": password,
			"submit":   "Login!",
		}).
		Post("/handlers/login_handler.php")
	if err != nil {
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login request rejected")
		return fmt.Errorf("login returned status %s", res.Status())
	}

	// a rejected login lands back on a page that still renders the
	// login form
	if bytes.Contains(res.Body(), []byte(`name="password"`)) {
		span.SetStatus(codes.Error, "credentials rejected")
		return ErrLoginFailed
	}
	return nil
}

// FetchEfficiency pulls the efficiency/tempo summary table. A season of
// 0 means the current season.
func (c *Client) FetchEfficiency(ctx context.Context, season int) (Table, error) {
	ctx, span := tracer.Start(ctx, "FetchEfficiency")
	defer span.End()

	req := c.http.R().SetContext(ctx)
	if season > 0 {
		req.SetQueryParam("y", strconv.Itoa(season))
	}
	res, err := req.Get("/summary.php")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch summary page")
		return Table{}, err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "summary page rejected")
		return Table{}, fmt.Errorf("summary page returned status %s", res.Status())
	}

	table, err := parseRatingsTable(bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse ratings table")
		return Table{}, err
	}
	if len(table.Rows) == 0 {
		return Table{}, fmt.Errorf(
			"efficiency table came back empty, login may have failed or the page format changed",
		)
	}
	return table, nil
}
