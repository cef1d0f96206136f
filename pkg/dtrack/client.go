package dtrack

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dtrack-tools/dtrack-report/pkg/logger"
)

const (
	// pageSize is the fixed page size for the paginated project listing.
	pageSize = 100

	requestTimeout = 30 * time.Second
)

// ErrNotFound indicates that a project lookup produced no result. It is the
// only lookup failure callers should treat as "does not exist"; every other
// error is a transport or server problem.
var ErrNotFound = errors.New("project not found")

// Options configures a Client. No process-wide state is involved; every
// Client carries its own copy.
type Options struct {
	// BaseURL is the Dependency-Track server root, e.g. "https://dtrack.example.com".
	BaseURL string
	// APIKey is sent on every request via the X-Api-Key header.
	APIKey string
	// VerifyTLS disables certificate verification when false. Skipping
	// verification also silences the certificate noise a self-signed
	// deployment would otherwise produce.
	VerifyTLS bool
}

// Client performs authenticated read requests against the Dependency-Track
// REST API. All calls are synchronous with a fixed 30-second timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a Client from explicit options.
func NewClient(opts Options) *Client {
	transport := http.DefaultTransport
	if !opts.VerifyTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
	}
}

// get issues an authenticated GET and decodes the JSON body into out.
// A non-2xx status is returned as an error carrying the status code.
func (c *Client) get(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	logger.Debugf("GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// Projects fetches every project, paging through the list endpoint until a
// short or empty page signals the end. Any page failure aborts the whole
// listing; partial results are never returned.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var all []Project
	for page := 1; ; page++ {
		var batch []Project
		path := fmt.Sprintf("/api/v1/project?pageNumber=%d&pageSize=%d", page, pageSize)
		if err := c.get(ctx, path, &batch); err != nil {
			return nil, fmt.Errorf("listing projects (page %d): %w", page, err)
		}
		if len(batch) == 0 {
			break
		}
		all = append(all, batch...)
		if len(batch) < pageSize {
			break
		}
	}
	return all, nil
}

// Project fetches a single project by UUID. A 404 maps to ErrNotFound;
// transport and server failures are surfaced as-is so the caller can decide
// whether to suppress them.
func (c *Client) Project(ctx context.Context, uuid string) (Project, error) {
	var p Project
	if err := c.get(ctx, "/api/v1/project/"+uuid, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Project{}, ErrNotFound
		}
		return Project{}, fmt.Errorf("fetching project %s: %w", uuid, err)
	}
	return p, nil
}

// FindProjectByName scans the full project list for a case-insensitive exact
// name match and returns the first hit under the API's stable ordering.
// Linear on purpose: invocation is one-shot, an index would never pay off.
func (c *Client) FindProjectByName(ctx context.Context, name string) (Project, error) {
	projects, err := c.Projects(ctx)
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

// DirectDependencies fetches a project's immediate dependency graph edges,
// in the order the server returns them.
func (c *Client) DirectDependencies(ctx context.Context, projectUUID string) ([]Component, error) {
	var deps []Component
	path := "/api/v1/dependencyGraph/project/" + projectUUID + "/directDependencies"
	if err := c.get(ctx, path, &deps); err != nil {
		return nil, fmt.Errorf("fetching direct dependencies of %s: %w", projectUUID, err)
	}
	return deps, nil
}

// ComponentVulnerabilities fetches the vulnerability records attached to one
// component.
func (c *Client) ComponentVulnerabilities(ctx context.Context, componentUUID string) ([]Vulnerability, error) {
	var vulns []Vulnerability
	path := "/api/v1/vulnerability/component/" + componentUUID
	if err := c.get(ctx, path, &vulns); err != nil {
		return nil, fmt.Errorf("fetching vulnerabilities of component %s: %w", componentUUID, err)
	}
	return vulns, nil
}
