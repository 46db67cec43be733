package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Astemirdum/readinglist-service/config"
	"github.com/Astemirdum/readinglist-service/internal/errs"
	"github.com/Astemirdum/readinglist-service/internal/model"
	"github.com/Astemirdum/readinglist-service/pkg/circuit_breaker"
	"github.com/pkg/errors"

	"go.uber.org/zap"
)

// Service queries the Google Books catalog for volume metadata.
type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.Catalog
	cb     circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Catalog) *Service {
	return &Service{
		log:    log.Named("catalog"),
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg,
		cb:     circuit_breaker.New(20, 10*time.Second, 0.5, 3),
	}
}

func (s *Service) CB() circuit_breaker.CircuitBreaker {
	return s.cb
}

// FetchByID returns the volume for the given catalog id.
// Any non-200 response is reported as errs.ErrNotFound.
func (s *Service) FetchByID(ctx context.Context, googleBooksID string) (model.Volume, error) {
	u := fmt.Sprintf("%s/volumes/%s", s.cfg.BaseURL, url.PathEscape(googleBooksID))
	if s.cfg.APIKey != "" {
		u += "?key=" + url.QueryEscape(s.cfg.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return model.Volume{}, err
	}

	var volume model.Volume
	if err := s.cb.Call(func() error {
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return errs.ErrNotFound
		}
		return json.NewDecoder(resp.Body).Decode(&volume)
	}); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.Volume{}, errs.ErrNotFound
		}
		s.log.Debug("FetchByID", zap.String("id", googleBooksID), zap.Error(err))
		return model.Volume{}, errors.Wrap(errs.ErrNotFound, err.Error())
	}
	return volume, nil
}

// Search returns raw volumes matching the query, possibly empty.
func (s *Service) Search(ctx context.Context, query string) ([]model.Volume, error) {
	params := url.Values{"q": []string{query}}
	if s.cfg.APIKey != "" {
		params.Set("key", s.cfg.APIKey)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/volumes?%s", s.cfg.BaseURL, params.Encode()), http.NoBody)
	if err != nil {
		return nil, err
	}

	var result model.SearchResponse
	if err := s.cb.Call(func() error {
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return errors.Wrapf(errs.ErrUpstream, "status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&result)
	}); err != nil {
		if errors.Is(err, errs.ErrUpstream) {
			return nil, err
		}
		return nil, errors.Wrap(errs.ErrUpstream, err.Error())
	}
	return result.Items, nil
}
