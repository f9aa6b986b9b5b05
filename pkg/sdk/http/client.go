package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Client wraps resty for the exchange API. Every call is issued exactly
// once: the desk has no retry policy, so neither does the transport.
type Client struct {
	client *resty.Client
}

func NewClient(host string) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(host, "/")).
		SetTimeout(30 * time.Second).
		SetRetryCount(0)

	return &Client{client: client}
}

// RequestOptions describes one request. Form and JSON are mutually
// exclusive; Form wins when both are set.
type RequestOptions struct {
	Headers map[string]string
	Params  map[string]string
	Form    map[string]string
	JSON    any
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	r := c.client.R()
	if ctx != nil {
		r.SetContext(ctx)
	}
	r.SetHeader("Accept", "*/*")
	r.SetHeader("Connection", "keep-alive")
	r.SetHeader("User-Agent", "goexch-desk")
	return r
}

// DoRequest issues one request and decodes the JSON response body into
// out. A non-2xx status or a network/decode error is a transport failure.
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, opt *RequestOptions, out any) error {
	rc := c.newRequest(ctx)
	if opt != nil {
		if opt.Headers != nil {
			rc.SetHeaders(opt.Headers)
		}
		if opt.Params != nil {
			rc.SetQueryParams(opt.Params)
		}
		switch {
		case opt.Form != nil:
			rc.SetHeader("Content-Type", "application/x-www-form-urlencoded")
			rc.SetFormData(opt.Form)
		case opt.JSON != nil:
			rc.SetHeader("Content-Type", "application/json")
			rc.SetBody(opt.JSON)
		}
	}
	if out != nil {
		rc.SetResult(out)
	}

	var (
		resp *resty.Response
		err  error
	)
	switch strings.ToUpper(method) {
	case http.MethodGet:
		resp, err = rc.Get(endpoint)
	case http.MethodPost:
		resp, err = rc.Post(endpoint)
	case http.MethodPut:
		resp, err = rc.Put(endpoint)
	default:
		return fmt.Errorf("unsupported method: %s", method)
	}
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	if !resp.IsSuccess() {
		return errors.Errorf("%s %s: http %d: %s",
			method, endpoint, resp.StatusCode(), strings.TrimSpace(string(resp.Body())))
	}
	return nil
}
