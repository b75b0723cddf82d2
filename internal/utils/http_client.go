package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so the adapter gets the full resty API
// plus room for draft-service specific helpers.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an HTTPClient with default resty configuration and
// its own connection pool. The adapter creates one per process and reuses it
// for every call to the draft service.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New()}
}
