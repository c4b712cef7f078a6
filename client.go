package seed

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/frantjc/seed/internal/seedblob"
	"github.com/frantjc/seed/internal/seedutil"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Client talks to the Apptile backend and downloads files from
// http(s) URLs and bucket URLs.
type Client struct {
	HTTPClient *http.Client
	// OpenBucket opens bucket URLs. Defaults to blob.OpenBucket.
	OpenBucket seedblob.Opener
}

func (c *Client) init() {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
}

// Manifest is the part of an app's published manifest that ends up in
// the local bundle tracker. Missing values are nil.
type Manifest struct {
	PublishedCommitID *int64 `json:"publishedCommitId"`
	AndroidBundleID   *int64 `json:"androidBundleId,omitempty"`
	IOSBundleID       *int64 `json:"iosBundleId,omitempty"`
}

var (
	publishedCommitIDPath = jp.MustParseString("$.forks[0].publishedCommitId")
	androidBundleIDPath   = jp.MustParseString("$.codeArtefacts[?(@.type == 'android-bundle')].id")
	iosBundleIDPath       = jp.MustParseString("$.codeArtefacts[?(@.type == 'ios-jsbundle')].id")
)

func ManifestURL(backendURL, appID string) (string, error) {
	base, err := url.Parse(backendURL)
	if err != nil {
		return "", err
	}

	return base.JoinPath("/api/v2/app", appID, "manifest").String(), nil
}

func AppConfigURL(appConfigServerURL, appID string, publishedCommitID int64) (string, error) {
	base, err := url.Parse(appConfigServerURL)
	if err != nil {
		return "", err
	}

	return base.JoinPath(appID, "main", "main", strconv.FormatInt(publishedCommitID, 10)+".json").String(), nil
}

// GetManifest fetches the published manifest of the app.
func (c *Client) GetManifest(ctx context.Context, backendURL, appID string) (*Manifest, error) {
	c.init()

	if backendURL == "" || appID == "" {
		return nil, fmt.Errorf("backend URL and app ID are required")
	}

	urlstr, err := ManifestURL(backendURL, appID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlstr, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http status code %d", res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return ParseManifest(b)
}

// ParseManifest extracts a Manifest from the JSON manifest document b.
func ParseManifest(b []byte) (*Manifest, error) {
	data, err := oj.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	return &Manifest{
		PublishedCommitID: nonZero(id(publishedCommitIDPath.First(data))),
		AndroidBundleID:   nonZero(id(androidBundleIDPath.First(data))),
		IOSBundleID:       id(iosBundleIDPath.First(data)),
	}, nil
}

// id converts a JSON value into an identifier, or nil if it is not one.
func id(v any) *int64 {
	var i int64
	switch n := v.(type) {
	case int64:
		i = n
	case float64:
		if n != math.Trunc(n) {
			return nil
		}
		i = int64(n)
	case string:
		var err error
		if i, err = strconv.ParseInt(n, 10, 64); err != nil {
			return nil
		}
	default:
		return nil
	}

	return &i
}

// nonZero treats an identifier of 0 as missing. The iOS bundle id is
// the one value that keeps 0.
func nonZero(i *int64) *int64 {
	if i == nil || *i == 0 {
		return nil
	}

	return i
}

// Download writes the object at urlstr to the file name, replacing it
// only once the whole object has been read.
func (c *Client) Download(ctx context.Context, urlstr, name string) error {
	c.init()

	if seedblob.IsBucketURL(urlstr) {
		pr, pw := io.Pipe()

		go func() {
			_ = pw.CloseWithError(seedblob.Copy(ctx, c.OpenBucket, urlstr, pw))
		}()

		err := seedutil.WriteFile(name, pr, 0o644)
		_ = pr.CloseWithError(err)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlstr, nil)
	if err != nil {
		return err
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("http status code %d", res.StatusCode)
	}

	return seedutil.WriteFile(name, res.Body, 0o644)
}
