// Package churchorg talks to the church membership portal: an
// authenticated session plus the JSON endpoints hanging off its mobile
// endpoint directory.
package churchorg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
	"wardreport/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/churchorg")

var ErrLoginFailed = errors.New("failed to sign in to the member portal")

const (
	loginPath     = "/sso/UI/Login"
	endpointsPath = "/mobile/ldstools/config.json"
)

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	UnitNumber string
	WardName   string
	StakeName  string

	endpoints map[string]string
}

type ClientOptions struct {
	BaseUrl string
	// defaults to 30s
	Timeout time.Duration
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scrapers/churchorg/http")

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}
	return c, nil
}

// Login posts the sign-in form, then primes the endpoint directory and
// the current user's unit information. The session lives in the cookie
// jar; Login must complete before any fetch.
func (c *Client) Login(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"IDToken1": username,
			"IDToken2": password,
		}).
		Post(loginPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}
	// the portal answers a failed sign-in with the form again
	if strings.Contains(strings.ToLower(res.String()), "idtoken1") {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return ErrLoginFailed
	}

	err = c.loadEndpoints(ctx)
	if err != nil {
		return err
	}
	return c.loadUnitInfo(ctx)
}

func (c *Client) loadEndpoints(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:loadEndpoints")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(endpointsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch endpoint directory")
		return err
	}
	if res.IsError() {
		err := fmt.Errorf("endpoint directory: unexpected status %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	endpoints := map[string]string{}
	err = json.Unmarshal(res.Body(), &endpoints)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse endpoint directory")
		return err
	}
	c.endpoints = endpoints
	return nil
}

// endpointUrl resolves a named endpoint, substituting the `%@`
// placeholder with the current unit number.
func (c *Client) endpointUrl(name string) (string, error) {
	link, ok := c.endpoints[name]
	if !ok {
		return "", fmt.Errorf("unknown endpoint %q", name)
	}
	return strings.ReplaceAll(link, "%@", c.UnitNumber), nil
}

func (c *Client) getEndpoint(ctx context.Context, name string, out any) error {
	ctx, span := tracer.Start(ctx, "client:getEndpoint")
	defer span.End()

	link, err := c.endpointUrl(name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return err
	}
	if res.IsError() {
		err := fmt.Errorf("%s: unexpected status %s", name, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse response")
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (c *Client) loadUnitInfo(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:loadUnitInfo")
	defer span.End()

	var unit struct {
		Message string `json:"message"`
	}
	err := c.getEndpoint(ctx, "current-user-unit", &unit)
	if err != nil {
		return err
	}
	c.UnitNumber = unit.Message

	var units []struct {
		Wards []struct {
			WardName      string `json:"wardName"`
			StakeName     string `json:"stakeName"`
			UsersHomeWard bool   `json:"usersHomeWard"`
		} `json:"wards"`
	}
	err = c.getEndpoint(ctx, "current-user-units", &units)
	if err != nil {
		return err
	}
	for _, u := range units {
		for _, ward := range u.Wards {
			if ward.UsersHomeWard {
				c.WardName = ward.WardName
				c.StakeName = ward.StakeName
				return nil
			}
		}
	}

	err = fmt.Errorf("no home ward in current-user-units response")
	span.SetStatus(codes.Error, err.Error())
	return err
}
