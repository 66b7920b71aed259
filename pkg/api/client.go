package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/collably/pkg/apierrors"
	ctxkeys "github.com/Ramsey-B/collably/pkg/context"
	"github.com/Ramsey-B/collably/pkg/expressions"
	"github.com/Ramsey-B/collably/pkg/httpclient"
	"github.com/Ramsey-B/collably/pkg/tracing"
)

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// TokenSource supplies the session token sent as the Authorization header
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Request holds the per-call values of a route: path parameters, query string and body.
// At most one of JSON and Form is used; Form wins when both are set.
type Request struct {
	Params map[string]string
	Query  url.Values
	JSON   any
	Form   *Form
}

// Client performs calls against the fixed Collably route table
type Client struct {
	baseURL   string
	http      *httpclient.Client
	evaluator *expressions.Evaluator
	tokens    TokenSource
	logger    ectologger.Logger
}

// NewClient creates an API client rooted at baseURL. tokens may be nil when no session exists.
func NewClient(baseURL string, httpClient *httpclient.Client, tokens TokenSource, logger ectologger.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q: scheme and host are required", baseURL)
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		evaluator: expressions.NewEvaluator(),
		tokens:    tokens,
		logger:    logger,
	}, nil
}

// Call performs the request registered under key and decodes the unwrapped payload into out.
// out may be nil when the payload is not needed.
func (c *Client) Call(ctx context.Context, key RouteKey, req Request, out any) (err error) {
	route, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("unknown route %q", key)
	}

	ctx = ctxkeys.SetRoute(ctx, string(key))
	ctx, span := tracing.StartCall(ctx, string(key), route.Method, route.Path)
	defer func() { tracing.EndSpan(span, err) }()

	httpReq, err := c.buildRequest(ctx, route, req)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(ctx, httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return apierrors.NetworkError(route.Op, route.Resource, ctxErr)
		}
		return apierrors.NetworkError(route.Op, route.Resource, err)
	}

	if !httpclient.IsSuccessStatus(resp.StatusCode) {
		return apierrors.RequestError(route.Op, route.Resource, resp.StatusCode, httpclient.ErrorMessage(resp))
	}

	body, err := httpclient.ParseJSON(resp)
	if err != nil {
		return apierrors.Wrap(apierrors.KindParse, err, fmt.Sprintf("%s: invalid response body", apierrors.GenericMessage(route.Op, route.Resource)))
	}

	payload, err := c.evaluator.Unwrap(route.Envelope, body, route.AllowBare)
	if err != nil {
		return apierrors.Wrap(apierrors.KindParse, err, fmt.Sprintf("%s: %v", apierrors.GenericMessage(route.Op, route.Resource), err))
	}

	if out == nil || payload == nil {
		return nil
	}

	if err := decode(payload, out); err != nil {
		return apierrors.Wrap(apierrors.KindParse, err, fmt.Sprintf("%s: unexpected response shape", apierrors.GenericMessage(route.Op, route.Resource)))
	}

	return nil
}

func (c *Client) buildRequest(ctx context.Context, route Route, req Request) (*http.Request, error) {
	path, err := expandPath(route.Path, req.Params)
	if err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		encoded, ct, err := req.Form.Encode()
		if err != nil {
			return nil, apierrors.Wrap(apierrors.KindValidation, err, err.Error())
		}
		body, contentType = encoded, ct
	case req.JSON != nil:
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		if len(encoded) > httpclient.MaxRequestSize {
			return nil, apierrors.Newf(apierrors.KindValidation, "request body too large: %d bytes (max %d)", len(encoded), httpclient.MaxRequestSize)
		}
		body, contentType = bytes.NewReader(encoded), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, route.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, httpReq.Header)
	if action := ctxkeys.GetAction(ctx); action != "" {
		httpReq.Header.Set(string(ctxkeys.ActionKey), action)
		httpReq.Header.Set(string(ctxkeys.ActionTokenKey), ctxkeys.GetActionToken(ctx))
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.logger.WithContext(ctx).WithError(err).Warn("failed to read session token")
		}
		if token != "" {
			httpReq.Header.Set("Authorization", token)
		}
	}

	return httpReq, nil
}

func expandPath(template string, params map[string]string) (string, error) {
	var missing []string
	path := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[1 : len(match)-1]
		value := params[name]
		if value == "" {
			missing = append(missing, name)
			return match
		}
		return url.PathEscape(value)
	})
	if len(missing) > 0 {
		return "", apierrors.Newf(apierrors.KindValidation, "missing path parameter: %s", strings.Join(missing, ", "))
	}
	return path, nil
}

func decode(payload any, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
