package seedblob

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// Opener opens the bucket at a URL. blob.OpenBucket is one.
type Opener func(context.Context, string) (*blob.Bucket, error)

// Copy copies the object at urlstr into w.
func Copy(ctx context.Context, open Opener, urlstr string, w io.Writer) error {
	if open == nil {
		open = blob.OpenBucket
	}

	bucketURL, key, err := SplitURL(urlstr)
	if err != nil {
		return err
	}

	bucket, err := open(ctx, bucketURL)
	if err != nil {
		return err
	}
	defer bucket.Close()

	r, err := bucket.NewReader(ctx, key, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return fmt.Errorf("%s: %w", urlstr, fs.ErrNotExist)
	} else if err != nil {
		return err
	}
	defer r.Close()

	if _, err = io.Copy(w, r); err != nil {
		return err
	}

	return nil
}
