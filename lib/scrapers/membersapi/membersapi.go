package membersapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parliament-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/membersapi")

const DefaultBaseUrl = "https://members-api.parliament.uk"

// 20 is the maximum page size the Search API allows
const searchPageSize = 20

type Client struct {
	http *resty.Client
}

// NewClient builds a client for the Parliament Members API. `headers` is
// merged into every request (the API asks automated callers to identify
// themselves).
func NewClient(baseUrl string, headers map[string]string) *Client {
	client := resty.New()
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	client.SetBaseURL(baseUrl)
	client.SetHeader("accept", "application/json")
	for k, v := range headers {
		client.SetHeader(k, v)
	}

	telemetry.InstrumentResty(client, "scrapers/membersapi/http")

	return &Client{http: client}
}

func (c *Client) getJSON(ctx context.Context, url string, query map[string]string, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(url)
	if err != nil {
		return err
	}
	if res.StatusCode() != 200 {
		return fmt.Errorf("GET %s: status %d", url, res.StatusCode())
	}
	return json.Unmarshal(res.Body(), out)
}

// SearchMembers pulls every member of the given house from the Members
// Search API, following the totalResults-driven pagination.
func (c *Client) SearchMembers(ctx context.Context, house int, currentOnly bool) ([]SearchMember, error) {
	ctx, span := tracer.Start(ctx, "SearchMembers")
	defer span.End()
	span.SetAttributes(attribute.Int("house", house))

	if house != HouseCommons && house != HouseLords {
		err := fmt.Errorf("house must be %d (Commons) or %d (Lords), got %d", HouseCommons, HouseLords, house)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var members []SearchMember
	skip := 0
	total := -1

	for total < 0 || skip < total {
		var page searchResponse
		err := c.getJSON(ctx, "/api/Members/Search", map[string]string{
			"House":           fmt.Sprint(house),
			"IsCurrentMember": fmt.Sprint(currentOnly),
			"skip":            fmt.Sprint(skip),
			"take":            fmt.Sprint(searchPageSize),
		}, &page)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch search page")
			return nil, err
		}

		total = page.TotalResults
		for _, item := range page.Items {
			members = append(members, item.Value)
		}
		if len(page.Items) == 0 {
			break
		}
		skip += searchPageSize
	}

	span.SetAttributes(attribute.Int("count", len(members)))
	return members, nil
}

// GetHistory fetches the name, party and house membership history of a
// single member from the Members History API.
func (c *Client) GetHistory(ctx context.Context, memberId int) (MemberHistory, error) {
	ctx, span := tracer.Start(ctx, "GetHistory")
	defer span.End()
	span.SetAttributes(attribute.Int("member_id", memberId))

	var items []historyItem
	err := c.getJSON(ctx, "/api/Members/History", map[string]string{
		"ids": fmt.Sprint(memberId),
	}, &items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch history")
		return MemberHistory{}, err
	}
	if len(items) == 0 {
		err := fmt.Errorf("no history returned for member %d", memberId)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MemberHistory{}, err
	}

	return items[0].Value, nil
}

// StateOfTheParties fetches party strengths in the given house on a date.
func (c *Client) StateOfTheParties(ctx context.Context, house int, date time.Time) ([]PartyState, error) {
	ctx, span := tracer.Start(ctx, "StateOfTheParties")
	defer span.End()
	span.SetAttributes(
		attribute.Int("house", house),
		attribute.String("date", date.Format("2006-01-02")),
	)

	if house != HouseCommons && house != HouseLords {
		err := fmt.Errorf("house must be %d (Commons) or %d (Lords), got %d", HouseCommons, HouseLords, house)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var res partyStateResponse
	url := fmt.Sprintf("/api/Parties/StateOfTheParties/%d/%s", house, date.Format("2006-01-02"))
	err := c.getJSON(ctx, url, nil, &res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch state of the parties")
		return nil, err
	}

	states := make([]PartyState, len(res.Items))
	for i, item := range res.Items {
		states[i] = item.Value
	}
	return states, nil
}
