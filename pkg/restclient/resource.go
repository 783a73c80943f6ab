package restclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	resthttp "github.com/fivetwenty-io/restclient/internal/http"
)

// Result is the outcome of a ResourceDriver operation. URL is always set.
// Response is nil in dry-run mode and otherwise holds whatever the transport
// returned, unread.
type Result struct {
	URL      string
	Response *http.Response

	dryRun bool
}

// DryRun reports whether the operation only computed its URL.
func (r *Result) DryRun() bool {
	return r.dryRun
}

// ResourceDriver builds URLs for a single resource and performs CRUD calls
// against them.
type ResourceDriver struct {
	resourceURL *url.URL
	urlsOnly    bool
	transport   Transport
}

// NewResourceDriver creates a driver for resourceURL. A nil transport selects
// the default one.
func NewResourceDriver(resourceURL string, urlsOnly bool, transport Transport) (*ResourceDriver, error) {
	if resourceURL == "" {
		return nil, fmt.Errorf("%w: resource URL is mandatory", ErrInvalidParameters)
	}

	parsed, err := parseURL(resourceURL)
	if err != nil {
		return nil, err
	}

	if transport == nil {
		transport = resthttp.NewClient()
	}

	return &ResourceDriver{
		resourceURL: parsed,
		urlsOnly:    urlsOnly,
		transport:   transport,
	}, nil
}

// URL returns the resource URL as joined from the base URL and resource name.
func (d *ResourceDriver) URL() string {
	return d.resourceURL.String()
}

// URLsOnly reports whether operations skip the network call.
func (d *ResourceDriver) URLsOnly() bool {
	return d.urlsOnly
}

// CollectionURL returns the URL used by List and Create.
func (d *ResourceDriver) CollectionURL() string {
	return withTrailingSeparator(d.resourceURL)
}

// ItemURL returns the URL used by Retrieve, PartialUpdate, Update and Destroy.
func (d *ResourceDriver) ItemURL(key interface{}) (string, error) {
	segment, err := formatKey(key)
	if err != nil {
		return "", err
	}

	return withTrailingSeparator(d.resourceURL, segment), nil
}

// List issues GET on the collection URL. Empty params are not forwarded.
func (d *ResourceDriver) List(ctx context.Context, params url.Values) (*Result, error) {
	target := d.CollectionURL()
	if d.urlsOnly {
		return dryRunResult(target), nil
	}

	var (
		resp *http.Response
		err  error
	)

	if len(params) == 0 {
		resp, err = d.transport.Get(ctx, target)
	} else {
		resp, err = d.transport.GetWithParams(ctx, target, params)
	}

	return newResult(target, resp, err)
}

// Create issues POST on the collection URL.
func (d *ResourceDriver) Create(ctx context.Context, data interface{}) (*Result, error) {
	target := d.CollectionURL()
	if d.urlsOnly {
		return dryRunResult(target), nil
	}

	resp, err := d.transport.Post(ctx, target, data)

	return newResult(target, resp, err)
}

// Retrieve issues GET on the item URL for key.
func (d *ResourceDriver) Retrieve(ctx context.Context, key interface{}) (*Result, error) {
	target, err := d.ItemURL(key)
	if err != nil {
		return nil, err
	}

	if d.urlsOnly {
		return dryRunResult(target), nil
	}

	resp, err := d.transport.Get(ctx, target)

	return newResult(target, resp, err)
}

// PartialUpdate issues PATCH on the item URL for key.
func (d *ResourceDriver) PartialUpdate(ctx context.Context, key interface{}, data interface{}) (*Result, error) {
	target, err := d.ItemURL(key)
	if err != nil {
		return nil, err
	}

	if d.urlsOnly {
		return dryRunResult(target), nil
	}

	resp, err := d.transport.Patch(ctx, target, data)

	return newResult(target, resp, err)
}

// Update issues PUT on the item URL for key.
func (d *ResourceDriver) Update(ctx context.Context, key interface{}, data interface{}) (*Result, error) {
	target, err := d.ItemURL(key)
	if err != nil {
		return nil, err
	}

	if d.urlsOnly {
		return dryRunResult(target), nil
	}

	resp, err := d.transport.Put(ctx, target, data)

	return newResult(target, resp, err)
}

// Destroy issues DELETE on the item URL for key.
func (d *ResourceDriver) Destroy(ctx context.Context, key interface{}) (*Result, error) {
	target, err := d.ItemURL(key)
	if err != nil {
		return nil, err
	}

	if d.urlsOnly {
		return dryRunResult(target), nil
	}

	resp, err := d.transport.Delete(ctx, target)

	return newResult(target, resp, err)
}

// newResult packs a transport return pair. The error is passed through as is,
// and a response returned alongside it is kept so its body can be closed.
func newResult(target string, resp *http.Response, err error) (*Result, error) {
	if err != nil && resp == nil {
		return nil, err
	}

	return &Result{URL: target, Response: resp}, err
}

func dryRunResult(target string) *Result {
	return &Result{URL: target, dryRun: true}
}
