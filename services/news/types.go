package news

import (
	"context"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/services/feedparser"
	"iris-dashboard/services/sourcecache"
	"net/http"
	"time"
)

const maxFeedSize = 5 << 20

type Service interface {
	// FetchArticles returns the newest articles across all feeds, or the last good list when
	// every feed failed.
	FetchArticles(ctx context.Context) []entities.NewsArticle
}

type Impl struct {
	name         string
	cacheKey     string
	sources      []constants.FeedSource
	perFeedLimit int
	totalLimit   int
	userAgent    string
	timeout      time.Duration
	client       *http.Client
	parser       feedparser.Service
	cache        sourcecache.Service
}
