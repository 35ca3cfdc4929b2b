// Package practicum talks to the Practicum homework statuses API and turns
// its answers into notification texts.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

const Endpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// ClientConfig contains configuration for the Practicum API client.
type ClientConfig struct {
	// Token is the OAuth token sent in the Authorization header
	Token string

	// Endpoint defaults to the public homework statuses URL
	Endpoint string

	// HTTPClient is used for requests; redirects are never followed
	HTTPClient *http.Client

	Logger log.FieldLogger
}

type Client struct {
	token      string
	endpoint   string
	httpClient *http.Client
	log        log.FieldLogger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = Endpoint
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}

	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		copied := *cfg.HTTPClient
		httpClient = &copied
	}
	// 301/302 must reach FetchUpdates as is
	httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &Client{
		token:      cfg.Token,
		endpoint:   cfg.Endpoint,
		httpClient: httpClient,
		log:        cfg.Logger,
	}
}

// FetchUpdates requests homework statuses changed since the given unix time.
// A zero since means "now".
func (c *Client) FetchUpdates(ctx context.Context, since int64) (*Response, error) {
	if since == 0 {
		since = time.Now().Unix()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &Error{Kind: KindEndpointUnreachable, Msg: "некорректный адрес эндпоинта", Endpoint: c.endpoint, Err: err}
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &Error{Kind: KindEndpointUnreachable, Msg: "ошибка формирования запроса", Endpoint: c.endpoint, Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:     KindEndpointUnreachable,
			Msg:      fmt.Sprintf("ошибка получения ответа от эндпоинта %s", c.endpoint),
			Endpoint: c.endpoint,
			Err:      err,
		}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusMovedPermanently, http.StatusFound:
		return nil, &Error{
			Kind:       KindEndpointMoved,
			Msg:        fmt.Sprintf("эндпоинт %s пытается перенаправить на другой адрес", c.endpoint),
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
		}
	default:
		return nil, &Error{
			Kind:       KindEndpointNotFound,
			Msg:        fmt.Sprintf("эндпоинт %s недоступен. Код ответа API: %d", c.endpoint, resp.StatusCode),
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Header:     resp.Header.Clone(),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:       KindEndpointUnreachable,
			Msg:        fmt.Sprintf("ошибка чтения ответа эндпоинта %s", c.endpoint),
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	// Unmarshal rejects anything after the top-level value
	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &Error{
			Kind:       KindEndpointUnreachable,
			Msg:        fmt.Sprintf("эндпоинт %s вернул некорректный JSON", c.endpoint),
			Endpoint:   c.endpoint,
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	c.log.WithField("from_date", since).Debug("Получен ответ API")
	return &result, nil
}
