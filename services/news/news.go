package news

import (
	"context"
	"fmt"
	"io"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/pkg/metrics"
	"iris-dashboard/services/feedparser"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// New builds the general news connector: politics, economics, finance and crypto feeds.
func New(client *http.Client, parser feedparser.Service, cache sourcecache.Service) *Impl {
	return newService("news", sourcecache.NewsKey, constants.GetNewsSources(),
		constants.NewsPerFeedLimit, constants.NewsTotalLimit, client, parser, cache)
}

// NewTech builds the technology news connector.
func NewTech(client *http.Client, parser feedparser.Service, cache sourcecache.Service) *Impl {
	return newService("tech_news", sourcecache.TechNewsKey, constants.GetTechNewsSources(),
		constants.TechNewsPerFeedLimit, constants.TechNewsTotalLimit, client, parser, cache)
}

func newService(name, cacheKey string, sources []constants.FeedSource, perFeedLimit, totalLimit int,
	client *http.Client, parser feedparser.Service, cache sourcecache.Service) *Impl {
	return &Impl{
		name:         name,
		cacheKey:     cacheKey,
		sources:      sources,
		perFeedLimit: perFeedLimit,
		totalLimit:   totalLimit,
		userAgent:    viper.GetString(constants.UserAgent),
		timeout:      time.Duration(viper.GetInt(constants.RSSTimeout)) * time.Second,
		client:       client,
		parser:       parser,
		cache:        cache,
	}
}

func (service *Impl) FetchArticles(ctx context.Context) []entities.NewsArticle {
	var articles []entities.NewsArticle
	for _, source := range service.sources {
		fetched, err := service.readFeed(ctx, source)
		if err != nil {
			log.Error().Err(err).
				Str(constants.LogCategory, source.Category).
				Str(constants.LogFeedURL, source.URL).
				Msgf("Cannot fetch feed, source ignored")
			metrics.RecordFeedFailure(source.Category)
			continue
		}

		log.Debug().
			Str(constants.LogCategory, source.Category).
			Str(constants.LogFeedURL, source.URL).
			Int(constants.LogArticleNumber, len(fetched)).
			Msgf("Feed read")
		articles = append(articles, fetched...)
	}

	if len(articles) == 0 {
		log.Warn().Str(constants.LogSourceKey, service.cacheKey).Msg("No article fetched, serving last known list")
		cached, found := sourcecache.Lookup[[]entities.NewsArticle](service.cache, service.cacheKey)
		if !found {
			metrics.RecordSourceFetch(service.name, metrics.OutcomeEmpty)
			return []entities.NewsArticle{}
		}
		metrics.RecordSourceFetch(service.name, metrics.OutcomeCached)
		return cached
	}

	articles = Latest(articles, service.totalLimit)
	service.cache.Set(service.cacheKey, articles)
	metrics.RecordSourceFetch(service.name, metrics.OutcomeFresh)
	log.Info().
		Str(constants.LogSourceKey, service.cacheKey).
		Int(constants.LogArticleNumber, len(articles)).
		Msg("News articles aggregated")
	return articles
}

func (service *Impl) readFeed(ctx context.Context, source constants.FeedSource) ([]entities.NewsArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, service.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", service.userAgent)

	resp, err := service.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed with status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	return service.parser.Parse(string(body), source.Category, service.perFeedLimit), nil
}

// Latest orders articles newest first and keeps at most limit of them.
func Latest(articles []entities.NewsArticle, limit int) []entities.NewsArticle {
	sorted := make([]entities.NewsArticle, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
