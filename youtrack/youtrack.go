package youtrack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/issuetools/youtrack-to-linear/backoff"
	"github.com/issuetools/youtrack-to-linear/json"
	"github.com/issuetools/youtrack-to-linear/types"
)

// totalCountHeader is the optional response header carrying the number of
// issues matching a query. Its absence is not an error.
const totalCountHeader = "X-YouTrack-TotalCount"

// ProgressFunc observes pagination progress after each fetched batch. A
// total below zero means the tracker did not report one.
type ProgressFunc func(fetched, total int)

type IYouTrackClient interface {
	CheckConnection(ctx context.Context) (string, error)
	Project(ctx context.Context, key string) (*Project, error)
	IssueCount(ctx context.Context, query string) (int, bool, error)
	EachIssue(ctx context.Context, query string, limit int, fn func(item types.RawItem) error) error
	ExportToFile(ctx context.Context, query string, limit int, path string) (int, error)
}

type Project struct {
	ID        string
	Name      string
	ShortName string
}

type YouTrackClient struct {
	BaseURL    string
	Token      string
	ProjectKey string
	BatchSize  int
	Fields     string
	HTTPClient *http.Client
	Backoff    *backoff.Policy
	JsonClient json.IJsonClient
	Progress   ProgressFunc
	Logger     *logrus.Logger
}

func NewYouTrackClient(baseURL string, token string, projectKey string, batchSize int, fields string, policy *backoff.Policy, jsonClient json.IJsonClient, logger *logrus.Logger) *YouTrackClient {
	return &YouTrackClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		ProjectKey: projectKey,
		BatchSize:  batchSize,
		Fields:     fields,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Backoff:    policy,
		JsonClient: jsonClient,
		Logger:     logger,
	}
}

// CheckConnection validates the credential against the account endpoint and
// returns the account name. Some tokens cannot read their own account, so an
// API-level failure falls back to probing the issues endpoint instead; that
// path returns an empty name.
func (youTrackClient *YouTrackClient) CheckConnection(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("fields", "login,name,email")
	body, _, err := youTrackClient.get(ctx, "/api/users/me", params)
	if err == nil {
		account, parseErr := types.ParseItem(body)
		if parseErr != nil {
			return "", fmt.Errorf("parsing account response: %w", parseErr)
		}
		if name, ok := account.StringField("name"); ok && name != "" {
			return name, nil
		}
		login, _ := account.StringField("login")
		return login, nil
	}

	var apiError *APIError
	if !errors.As(err, &apiError) {
		return "", err
	}

	youTrackClient.Logger.Debugf("Account endpoint unavailable (%v), probing issues endpoint", err)
	probe := url.Values{}
	probe.Set("$top", "1")
	if _, _, probeErr := youTrackClient.get(ctx, "/api/issues", probe); probeErr != nil {
		return "", probeErr
	}
	return "", nil
}

func (youTrackClient *YouTrackClient) Project(ctx context.Context, key string) (*Project, error) {
	params := url.Values{}
	params.Set("fields", "id,name,shortName")
	body, _, err := youTrackClient.get(ctx, "/api/admin/projects/"+url.PathEscape(key), params)
	if err != nil {
		return nil, err
	}

	item, err := types.ParseItem(body)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	project := &Project{}
	project.ID, _ = item.StringField("id")
	project.Name, _ = item.StringField("name")
	project.ShortName, _ = item.StringField("shortName")
	return project, nil
}

// IssueCount asks for the total number of issues matching query. The tracker
// reports it through an optional response header; when the header is absent
// the count is unknown, which is not an error.
func (youTrackClient *YouTrackClient) IssueCount(ctx context.Context, query string) (int, bool, error) {
	params := url.Values{}
	params.Set("$top", "1")
	if fullQuery := youTrackClient.buildQuery(query); fullQuery != "" {
		params.Set("query", fullQuery)
	}

	_, header, err := youTrackClient.get(ctx, "/api/issues", params)
	if err != nil {
		return 0, false, err
	}

	raw := header.Get(totalCountHeader)
	if raw == "" {
		return 0, false, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		youTrackClient.Logger.Debugf("Unparseable total count header %q, treating as unknown", raw)
		return 0, false, nil
	}
	return count, true, nil
}

// EachIssue fetches every issue matching query in batches of BatchSize and
// hands them to fn one at a time, in API order. A limit above zero truncates
// the stream after that many issues. Termination never trusts the reported
// total alone: an empty or short page always ends the loop.
func (youTrackClient *YouTrackClient) EachIssue(ctx context.Context, query string, limit int, fn func(item types.RawItem) error) error {
	total, known, err := youTrackClient.IssueCount(ctx, query)
	if err != nil {
		return err
	}
	if known {
		youTrackClient.Logger.Infof("Source reports %d matching issues", total)
	} else {
		youTrackClient.Logger.Info("Source did not report a total count, fetching until exhausted")
	}

	progressTotal := -1
	if known {
		progressTotal = total
		if limit > 0 && limit < total {
			progressTotal = limit
		}
	}

	fetched := 0
	skip := 0
	for {
		top := youTrackClient.BatchSize
		if limit > 0 && limit-fetched < top {
			top = limit - fetched
		}
		if top <= 0 {
			break
		}

		batch, err := youTrackClient.fetchPage(ctx, query, top, skip)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			break
		}

		for _, item := range batch {
			if err := fn(item); err != nil {
				return err
			}
		}
		fetched += len(batch)
		skip += len(batch)

		if youTrackClient.Progress != nil {
			youTrackClient.Progress(fetched, progressTotal)
		}

		if limit > 0 && fetched >= limit {
			break
		}
		if known && fetched >= total {
			break
		}
		// a short page is the authoritative end-of-results signal
		if len(batch) < top {
			break
		}
	}

	youTrackClient.Logger.Infof("Fetched %d issues", fetched)
	return nil
}

// ExportToFile drains EachIssue into memory and writes the result as one
// JSON array, returning the number of issues written. Nothing is written
// when the fetch fails partway.
func (youTrackClient *YouTrackClient) ExportToFile(ctx context.Context, query string, limit int, path string) (int, error) {
	items := []types.RawItem{}
	err := youTrackClient.EachIssue(ctx, query, limit, func(item types.RawItem) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := youTrackClient.JsonClient.Export(items, path); err != nil {
		return 0, err
	}
	youTrackClient.Logger.Infof("Wrote %d issues to %s", len(items), path)
	return len(items), nil
}

func (youTrackClient *YouTrackClient) fetchPage(ctx context.Context, query string, top int, skip int) ([]types.RawItem, error) {
	params := url.Values{}
	params.Set("$top", strconv.Itoa(top))
	params.Set("$skip", strconv.Itoa(skip))
	params.Set("fields", youTrackClient.Fields)
	if fullQuery := youTrackClient.buildQuery(query); fullQuery != "" {
		params.Set("query", fullQuery)
	}

	youTrackClient.Logger.Debugf("Fetching issues top=%d skip=%d", top, skip)
	body, _, err := youTrackClient.get(ctx, "/api/issues", params)
	if err != nil {
		return nil, err
	}

	batch, err := types.ParseItems(body)
	if err != nil {
		return nil, fmt.Errorf("parsing issues response: %w", err)
	}
	return batch, nil
}

// buildQuery combines the configured project scope with the caller's query.
// Both present joins them with a logical and; either alone is used as is.
// The project key is brace-delimited, the query grammar's form for values
// that are not a single token.
func (youTrackClient *YouTrackClient) buildQuery(query string) string {
	switch {
	case youTrackClient.ProjectKey != "" && query != "":
		return fmt.Sprintf("project: {%s} and (%s)", youTrackClient.ProjectKey, query)
	case youTrackClient.ProjectKey != "":
		return fmt.Sprintf("project: {%s}", youTrackClient.ProjectKey)
	default:
		return query
	}
}

// get performs one GET against the tracker, retrying per the backoff policy.
// The response body and headers are returned only for 2xx responses.
func (youTrackClient *YouTrackClient) get(ctx context.Context, path string, params url.Values) ([]byte, http.Header, error) {
	endpoint := youTrackClient.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body []byte
	var header http.Header
	err := youTrackClient.Backoff.Do(ctx, func(ctx context.Context) error {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		request.Header.Set("Authorization", "Bearer "+youTrackClient.Token)
		request.Header.Set("Accept", "application/json")
		request.Header.Set("Content-Type", "application/json")

		response, err := youTrackClient.HTTPClient.Do(request)
		if err != nil {
			return err
		}
		defer response.Body.Close()

		payload, err := io.ReadAll(response.Body)
		if err != nil {
			return err
		}
		if response.StatusCode < 200 || response.StatusCode >= 300 {
			return newAPIError(response.StatusCode, strings.TrimSpace(string(payload)))
		}

		body = payload
		header = response.Header
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return body, header, nil
}
