package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Bigmatrix2/Dreammaker/application/ports/outbound"
	"github.com/Bigmatrix2/Dreammaker/domain"
)

// ContentFetcher performs one upstream round trip and returns the body of a 200 response.
// Any other status becomes a *domain.UpstreamError carrying the status and body verbatim.
type ContentFetcher interface {
	FetchContent(req *http.Request) ([]byte, error)
}

type contentFetcher struct {
	logger outbound.LoggerPort
	stage  domain.StageName
	client *http.Client
}

func NewContentFetcher(logger outbound.LoggerPort, stage domain.StageName, timeout time.Duration) ContentFetcher {
	return &contentFetcher{
		logger: logger,
		stage:  stage,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *contentFetcher) FetchContent(req *http.Request) ([]byte, error) {
	fields := map[string]interface{}{
		"stage":  c.stage,
		"method": req.Method,
		"URL":    req.URL.String(),
	}

	res, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.logger.ErrorWithFields(err, "HTTP request timed out", fields)
			return nil, domain.NewUpstreamTimeout(c.stage)
		}
		c.logger.ErrorWithFields(err, "Failed to send the HTTP request", fields)
		return nil, fmt.Errorf("%s request failed: %w", c.stage, err)
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.ErrorWithFields(err, "Failed to close the response body", fields)
		}
	}(res.Body)

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		if isTimeout(err) {
			c.logger.ErrorWithFields(err, "Reading the response body timed out", fields)
			return nil, domain.NewUpstreamTimeout(c.stage)
		}
		c.logger.ErrorWithFields(err, "Failed to read the response body", fields)
		return nil, fmt.Errorf("%s response could not be read: %w", c.stage, err)
	}

	if res.StatusCode != http.StatusOK {
		fields["status"] = res.StatusCode
		fields["message"] = string(payload)
		c.logger.WarnWithFields("HTTP request returned non-OK status code", fields)
		return nil, &domain.UpstreamError{
			Stage:  c.stage,
			Status: res.StatusCode,
			Body:   string(payload),
		}
	}

	return payload, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
