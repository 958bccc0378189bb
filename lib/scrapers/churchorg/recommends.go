package churchorg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"wardreport/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// RecommendEntry is one row of the recommend status report. The
// expiration date comes back as YYYYMMDD or YYYYMM, or not at all when
// the portal does not know it.
type RecommendEntry struct {
	// the portal has shipped both key spellings for the individual id
	Id           int64 `json:"id"`
	IndividualId int64 `json:"individualId"`

	Name           string `json:"name"`
	SpokenName     string `json:"spokenName"`
	ExpirationDate string `json:"expirationDate"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	HouseholdPhone string `json:"householdPhone"`
	HouseholdEmail string `json:"householdEmail"`
	Status         string `json:"recommendStatus"`
}

// MemberId returns whichever individual id key the payload carried.
func (e RecommendEntry) MemberId() int64 {
	if e.IndividualId != 0 {
		return e.IndividualId
	}
	return e.Id
}

// RecommendStatus fetches the recommend report for the signed-in
// user's unit from the JSON endpoint.
func (c *Client) RecommendStatus(ctx context.Context) ([]RecommendEntry, error) {
	ctx, span := tracer.Start(ctx, "client:RecommendStatus")
	defer span.End()

	var entries []RecommendEntry
	err := c.getEndpoint(ctx, "temple-recommend-status", &entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RecommendEntries fetches the recommend report, preferring the JSON
// endpoint and falling back to the HTML rendering when the endpoint
// fails. Some units never got the JSON endpoint enabled.
func (c *Client) RecommendEntries(ctx context.Context) ([]RecommendEntry, error) {
	ctx, span := tracer.Start(ctx, "client:RecommendEntries")
	defer span.End()

	entries, err := c.RecommendStatus(ctx)
	if err == nil {
		return entries, nil
	}
	span.AddEvent("json endpoint failed, falling back to the html report")

	page, htmlErr := c.RecommendReportHTML(ctx)
	if htmlErr != nil {
		span.SetStatus(codes.Error, "both recommend report shapes failed")
		return nil, errors.Join(err, htmlErr)
	}
	return ParseRecommendHTML(page)
}

// ParseRecommendHTML parses the recommend report out of the portal's
// HTML rendering, the fallback shape when the JSON endpoint is
// unavailable. Rows whose status is ACTIVE are skipped; the rest carry
// contact data on the name anchor's data-* attributes and the
// expiration date in the sixth column.
func ParseRecommendHTML(page []byte) ([]RecommendEntry, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(page))
	if err != nil {
		return nil, err
	}

	var entries []RecommendEntry
	doc.Find("table#dataTable tbody tr").Each(func(_ int, row *goquery.Selection) {
		status := strings.TrimSpace(row.Find("td:nth-child(2)").Text())
		if status == "ACTIVE" {
			return
		}

		anchor := row.Find("td.n.fn a").First()
		if anchor.Length() == 0 {
			return
		}

		expires := ""
		expireCell := row.Find("td:nth-child(6)")
		if len(expireCell.Nodes) > 0 {
			expires = htmlutil.CleanText(expireCell.Nodes[0])
		}

		entries = append(entries, RecommendEntry{
			Name:           anchor.AttrOr("data-spoken-name", strings.TrimSpace(anchor.Text())),
			SpokenName:     anchor.AttrOr("data-spoken-name", ""),
			Email:          anchor.AttrOr("data-email", ""),
			Phone:          anchor.AttrOr("data-phone", ""),
			ExpirationDate: expires,
			Status:         status,
		})
	})

	return entries, nil
}

// RecommendReportHTML fetches the raw HTML rendering of the recommend
// report, for units where the JSON endpoint is not exposed.
func (c *Client) RecommendReportHTML(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "client:RecommendReportHTML")
	defer span.End()

	link, err := c.endpointUrl("temple-recommend-report")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("recommend report: unexpected status %s", res.Status())
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return res.Body(), nil
}
