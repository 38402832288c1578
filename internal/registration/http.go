package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"signupweb/internal/signup"
)

const (
	DefaultURL     = "http://localhost:8080/api/users/register"
	DefaultTimeout = 15 * time.Second

	// RequestIDHeader carries the attempt id to the registration service.
	RequestIDHeader = "X-Request-ID"

	maxBody = 64 << 10
)

// HTTPRegistrar registers accounts by posting the draft as JSON to a registration endpoint.
type HTTPRegistrar struct {
	URL    string
	httpDo *http.Client
}

func NewHTTPRegistrar(url string, timeout time.Duration) *HTTPRegistrar {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPRegistrar{
		URL: url,
		httpDo: &http.Client{
			Timeout: timeout,
		},
	}
}

func (r *HTTPRegistrar) Register(ctx context.Context, draft signup.Draft) signup.Result {
	data, err := json.Marshal(draft)
	if err != nil {
		return signup.TransportFailed{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, bytes.NewReader(data))
	if err != nil {
		return signup.TransportFailed{Err: err}
	}
	requestID := RequestIDFromContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := r.httpDo.Do(req)
	if err != nil {
		fiberlog.Errorf("registration %s: %v", requestID, err)
		return signup.TransportFailed{Err: err}
	}
	defer resp.Body.Close()

	// Any 2xx means the account exists; the body is informational.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		user, err := decodeUser(io.LimitReader(resp.Body, maxBody))
		if err != nil {
			fiberlog.Debugf("registration %s: success body is not a user record: %v", requestID, err)
		}
		return signup.Registered{User: user}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return signup.TransportFailed{Err: fmt.Errorf("read error body: %w", err)}
	}
	fiberlog.Debugf("registration %s: http %d: %s", requestID, resp.StatusCode, body)

	return DecodeFailure(resp.StatusCode, body)
}

type userBody struct {
	ID    any    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// decodeUser reads a user record whose id may be a JSON string or number.
func decodeUser(r io.Reader) (signup.User, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body userBody
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return signup.User{}, nil
		}
		return signup.User{}, err
	}

	user := signup.User{Email: body.Email, Name: body.Name}
	switch id := body.ID.(type) {
	case string:
		user.ID = id
	case json.Number:
		user.ID = id.String()
	}
	return user, nil
}

type errorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

// fieldErrors reads {"field": ["msg", ...]} or {"field": "msg"}.
func fieldErrors(raw json.RawMessage) map[string][]string {
	var byField map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byField); err != nil {
		return nil
	}

	fields := make(map[string][]string, len(byField))
	for name, value := range byField {
		var one string
		if err := json.Unmarshal(value, &one); err == nil {
			if one != "" {
				fields[name] = []string{one}
			}
			continue
		}
		var many []string
		if err := json.Unmarshal(value, &many); err == nil && len(many) > 0 {
			fields[name] = many
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// DecodeFailure maps a non-2xx response body to a Result. The structured
// {"message", "errors"} object is the expected contract; a JSON string or a
// plain text body is taken as the message.
func DecodeFailure(status int, body []byte) signup.Result {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return signup.Rejected{Status: status}
	}

	switch trimmed[0] {
	case '{':
		var eb errorBody
		if err := json.Unmarshal(trimmed, &eb); err == nil {
			msg := eb.Message
			if msg == "" {
				msg = eb.Error
			}
			if fields := fieldErrors(eb.Errors); fields != nil {
				return signup.ValidationFailed{Status: status, Message: msg, Fields: fields}
			}
			// An object without a message leaves the alert to the status text.
			return signup.Rejected{Status: status, Message: msg}
		}
	case '"':
		var msg string
		if err := json.Unmarshal(trimmed, &msg); err == nil {
			return signup.Rejected{Status: status, Message: msg}
		}
	}

	return signup.Rejected{Status: status, Message: strings.TrimSpace(string(trimmed))}
}
