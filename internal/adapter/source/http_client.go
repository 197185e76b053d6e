package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/thushan/holocron/internal/adapter/stats"
	"github.com/thushan/holocron/internal/core/constants"
	"github.com/thushan/holocron/internal/core/domain"
	"github.com/thushan/holocron/internal/core/ports"
	"github.com/thushan/holocron/internal/logger"
	"github.com/thushan/holocron/internal/util"
	"github.com/thushan/holocron/internal/version"
)

const (
	NameSWAPI = "swapi"

	opFetchAll = "fetch_all"
	opFetchOne = "fetch_one"
)

// HTTPSource loads people from a SWAPI compatible REST endpoint
type HTTPSource struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.StyledLogger
	baseURL    string
	config     Config
}

var _ ports.RecordSource = (*HTTPSource)(nil)

func NewHTTPSource(config Config, log *logger.StyledLogger) *HTTPSource {
	config = config.withDefaults()

	limit := rate.Inf
	burst := 1
	if config.RequestsPerSecond > 0 {
		limit = rate.Limit(config.RequestsPerSecond)
		burst = max(1, config.ConcurrentFetches)
	}

	return &HTTPSource{
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        DefaultMaxIdleConnections,
				IdleConnTimeout:     DefaultIdleConnTimeout,
				MaxIdleConnsPerHost: DefaultMaxIdleConnectionsPerHost,
			},
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  log,
		baseURL: util.NormaliseBaseURL(config.BaseURL),
		config:  config,
	}
}

func (s *HTTPSource) Name() string {
	return NameSWAPI
}

// FetchAll retrieves the whole people listing. A bare array body is taken as
// the full set, a paged body has its remaining pages fetched concurrently and
// reassembled in page order.
func (s *HTTPSource) FetchAll(ctx context.Context) ([]domain.Record, error) {
	startTime := time.Now()
	log := s.logger.WithRequestID(uuid.NewString())
	listURL := util.ResolveURLPath(s.baseURL, constants.PeopleResource+"/")

	log.InfoWithURL("Fetching records from", listURL)

	body, attempts, err := s.get(ctx, log, listURL)
	if err != nil {
		return nil, s.fetchError(opFetchAll, listURL, attempts, startTime, err)
	}

	first, err := parsePeople(body)
	if err != nil {
		return nil, s.fetchError(opFetchAll, listURL, attempts, startTime, err)
	}

	if !first.Paged || first.Next == "" {
		log.InfoWithCount("Fetched records", len(first.Records), "latency", time.Since(startTime))
		return first.Records, nil
	}

	pages := pageCount(first.Count, len(first.Records))
	rest, err := s.fetchPages(ctx, log, listURL, pages)
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, first.Count)
	records = append(records, first.Records...)
	for _, page := range rest {
		records = append(records, page...)
	}

	log.InfoWithCount("Fetched records", len(records), "pages", pages, "latency", time.Since(startTime))
	return records, nil
}

// fetchPages loads pages 2..pages, keeping results indexed by page
func (s *HTTPSource) fetchPages(ctx context.Context, log *logger.StyledLogger, listURL string, pages int) ([][]domain.Record, error) {
	if pages < 2 {
		return nil, nil
	}

	results := make([][]domain.Record, pages-1)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(min(s.config.ConcurrentFetches, pages-1))

	for page := 2; page <= pages; page++ {
		eg.Go(func() error {
			startTime := time.Now()
			pageURL := withPage(listURL, page)

			body, attempts, err := s.get(ctx, log, pageURL)
			if err != nil {
				return s.fetchError(opFetchAll, pageURL, attempts, startTime, err)
			}

			parsed, err := parsePeople(body)
			if err != nil {
				return s.fetchError(opFetchAll, pageURL, attempts, startTime, err)
			}

			results[page-2] = parsed.Records
			log.Debug("Fetched page", "page", page, "records", len(parsed.Records), "latency", time.Since(startTime))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// FetchOne retrieves a single record. id is either a SWAPI resource url or
// the numeric id within the people resource.
func (s *HTTPSource) FetchOne(ctx context.Context, id string) (domain.Record, error) {
	startTime := time.Now()
	log := s.logger.WithRequestID(uuid.NewString())

	recordURL := id
	if parsed, err := url.Parse(id); err != nil || !parsed.IsAbs() {
		recordURL = util.ResolveURLPath(s.baseURL, fmt.Sprintf("%s/%s/", constants.PeopleResource, strings.Trim(id, "/")))
	}

	body, attempts, err := s.get(ctx, log, recordURL)
	if err != nil {
		return domain.Record{}, s.fetchError(opFetchOne, recordURL, attempts, startTime, err)
	}

	record, err := parseRecord(body)
	if err != nil {
		return domain.Record{}, s.fetchError(opFetchOne, recordURL, attempts, startTime, err)
	}
	return record, nil
}

// get performs a GET with the retry policy: network failures and 5xx
// responses are retried up to MaxRetries times with linear backoff, anything
// else fails straight away
func (s *HTTPSource) get(ctx context.Context, log *logger.StyledLogger, target string) ([]byte, int, error) {
	var lastErr error
	attempts := 0

	for retry := 0; retry <= s.config.MaxRetries; retry++ {
		if retry > 0 {
			if s.config.Stats != nil {
				s.config.Stats.RecordRetry()
			}
			backoff := util.CalculateLinearBackoff(retry, s.config.RetryBackoff)
			log.WarnWithContext("Retrying", target, logger.LogContext{
				UserArgs:     []any{"retry", retry, "backoff", backoff},
				DetailedArgs: []any{"error", lastErr},
			})
			if err := sleep(ctx, backoff); err != nil {
				return nil, attempts, err
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, attempts, err
		}

		attempts++
		attemptStart := time.Now()
		body, err := s.do(ctx, target)
		s.record(target, attemptStart, body, err)
		if err == nil {
			return body, attempts, nil
		}

		lastErr = err
		if ctx.Err() != nil || !domain.IsRetryable(err) {
			break
		}
	}

	return nil, attempts, lastErr
}

func (s *HTTPSource) record(target string, start time.Time, body []byte, err error) {
	if s.config.Stats == nil {
		return
	}
	status := stats.StatusSuccess
	if err != nil {
		status = stats.StatusFailure
	}
	s.config.Stats.RecordRequest(target, status, time.Since(start), int64(len(body)))
}

func (s *HTTPSource) do(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", target, err)
	}
	req.Header.Set(constants.AcceptHeader, constants.ContentTypeJSON)
	req.Header.Set(constants.UserAgentHeader, version.UserAgent())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{URL: target, Err: err}
	}
	defer func(Body io.ReadCloser) {
		// dont care about errors
		_ = Body.Close()
	}(resp.Body)

	switch {
	case resp.StatusCode >= 500:
		return nil, &domain.ServerError{URL: target, StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &domain.ClientError{URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, &domain.NetworkError{URL: target, Err: err}
	}
	return body, nil
}

func (s *HTTPSource) fetchError(op, target string, attempts int, startTime time.Time, err error) error {
	var fetchErr *domain.FetchError
	if errors.As(err, &fetchErr) {
		return err
	}

	statusCode := 0
	var serverErr *domain.ServerError
	var clientErr *domain.ClientError
	switch {
	case errors.As(err, &serverErr):
		statusCode = serverErr.StatusCode
	case errors.As(err, &clientErr):
		statusCode = clientErr.StatusCode
	}

	return &domain.FetchError{
		Err:        err,
		Source:     s.Name(),
		Operation:  op,
		URL:        target,
		StatusCode: statusCode,
		Attempts:   attempts,
		Latency:    time.Since(startTime),
	}
}

func withPage(listURL string, page int) string {
	u, err := url.Parse(listURL)
	if err != nil {
		return listURL
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
