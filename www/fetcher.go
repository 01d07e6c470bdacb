// Package www retrieves documents over HTTP.
package www

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// MaxDocumentBytes bounds the size of a fetched document.
const MaxDocumentBytes = 8 << 20

type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func doFetch(client *http.Client, req *http.Request) ([]byte, error) {
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxDocumentBytes+1))
	if res.StatusCode > 299 {
		for k, v := range res.Header {
			logrus.WithField("header", k).Debug(v)
		}
		return nil, fmt.Errorf("response failed with status code: %d and\nbody: %s", res.StatusCode, body)
	}
	if err != nil {
		return nil, err
	}
	if len(body) > MaxDocumentBytes {
		return nil, fmt.Errorf("document at %s exceeds %d bytes", req.URL, MaxDocumentBytes)
	}
	return body, nil
}

// NewFetcher returns a FetcherFunc that issues GET requests with client.
func NewFetcher(client *http.Client) FetcherFunc {
	return func(ctx context.Context, url string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, text/html;q=0.8, */*;q=0.1")
		logrus.WithField("url", url).Debug("fetching document")
		return doFetch(client, req)
	}
}

// Fetcher fetches with http.DefaultClient.
func Fetcher(ctx context.Context, url string) ([]byte, error) {
	return NewFetcher(http.DefaultClient)(ctx, url)
}
