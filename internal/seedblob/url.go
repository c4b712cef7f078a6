package seedblob

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
)

// IsBucketURL reports whether urlstr has a scheme registered with
// gocloud.dev/blob, e.g. s3:// or file://.
func IsBucketURL(urlstr string) bool {
	u, err := url.Parse(urlstr)
	if err != nil || u.Scheme == "" {
		return false
	}

	return blob.DefaultURLMux().ValidBucketScheme(u.Scheme)
}

// SplitURL splits a URL to an object into the URL of the bucket that
// holds it and its key. For file:// URLs the bucket is the object's
// directory; for all others it is the URL's host.
func SplitURL(urlstr string) (string, string, error) {
	u, err := url.Parse(urlstr)
	if err != nil {
		return "", "", err
	}

	var key string
	if strings.EqualFold(u.Scheme, "file") {
		key = path.Base(u.Path)
		u.Path = path.Dir(u.Path)
	} else {
		key = strings.TrimPrefix(u.Path, "/")
		u.Path = ""
	}

	if key == "" || key == "." || key == "/" {
		return "", "", fmt.Errorf("no object key in %s", urlstr)
	}

	return u.String(), key, nil
}
