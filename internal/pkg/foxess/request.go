package foxess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/anicoll/foxess-integration/internal/pkg/model"
	"go.uber.org/zap"
)

const requestTimeout = 75 * time.Second

// request sends one signed call and decodes the result field into out (when
// out is non-nil). The signature covers the base path only, never the query
// string. write routes the call through the slower write limit.
func (s *service) request(ctx context.Context, method, path string, body, out any, write bool) error {
	if err := s.limiter.wait(ctx, write); err != nil {
		return fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		s.logger.Debug("request data", zap.ByteString("body", data))
		reader = bytes.NewReader(data)
	}

	sigPath, _, _ := strings.Cut(path, "?")
	req, err := http.NewRequestWithContext(ctx, method, s.cfg.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header = s.authHeaders(sigPath)

	s.logger.Debug("api request", zap.String("method", method), zap.String("url", req.URL.String()))
	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommunication, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: invalid API key or unauthorized access", ErrAuthentication)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCommunication, err)
	}

	env := model.Response[json.RawMessage]{}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrCommunication, err)
	}

	// A bad HTTP status outranks whatever the body claims.
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: unexpected status %d", ErrCommunication, res.StatusCode)
	}

	if env.Errno != 0 {
		lower := strings.ToLower(env.Msg)
		if strings.Contains(lower, "token") || strings.Contains(lower, "auth") {
			return fmt.Errorf("%w: %s", ErrAuthentication, env.Msg)
		}
		return &APIError{Errno: env.Errno, Msg: env.Msg}
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%w: decoding result: %v", ErrCommunication, err)
		}
	}
	return nil
}
