package constants

const (
	NewsPerFeedLimit      = 3
	NewsTotalLimit        = 15
	TechNewsPerFeedLimit  = 5
	TechNewsTotalLimit    = 30
	DefaultSourceName     = "News"
	DashboardUpdateEvent  = "dashboard_update"
	TechNewsUpdateEvent   = "tech_news_update"
	RequestRefreshEvent   = "request_refresh"
	RequestTechNewsEvent  = "request_tech_news"
	RequestTechNewsReload = "request_tech_news_refresh"
)

type FeedSource struct {
	Category string
	URL      string
}

type Publication struct {
	Domain string
	Name   string
}

type Location struct {
	Label     string
	Latitude  float64
	Longitude float64
}

func GetNewsSources() []FeedSource {
	return []FeedSource{
		{Category: "US Politics", URL: "https://feeds.npr.org/1001/rss.xml"},
		{Category: "US Politics", URL: "https://www.politico.com/rss/politics08.xml"},
		{Category: "Economics", URL: "https://feeds.a.dj.com/rss/WSJcomUSBusiness.xml"},
		{Category: "Finance", URL: "https://feeds.bloomberg.com/markets/news.rss"},
		{Category: "Economics", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
		{Category: "Cryptocurrency", URL: "https://cointelegraph.com/rss"},
		{Category: "Cryptocurrency", URL: "https://www.coindesk.com/arc/outboundfeeds/rss/"},
	}
}

func GetTechNewsSources() []FeedSource {
	return []FeedSource{
		{Category: "AI News", URL: "https://feeds.feedburner.com/venturebeat/SZYF"},
		{Category: "AI", URL: "https://www.artificialintelligence-news.com/feed/"},
		{Category: "Technology", URL: "https://techcrunch.com/feed/"},
		{Category: "Technology", URL: "https://www.theverge.com/rss/index.xml"},
		{Category: "Technology", URL: "https://www.wired.com/feed/rss"},
		{Category: "Technology", URL: "https://arstechnica.com/feed/"},
		{Category: "Open Source", URL: "https://www.redhat.com/en/rss/blog"},
		{Category: "Linux", URL: "https://fedoramagazine.org/feed/"},
		{Category: "Open Source", URL: "https://www.linux.com/feed/"},
		{Category: "Cloud", URL: "https://cloud.google.com/blog/rss"},
		{Category: "Technology", URL: "https://blog.google/rss/"},
		{Category: "Developer", URL: "https://github.blog/feed/"},
		{Category: "Developer", URL: "https://stackoverflow.blog/feed/"},
	}
}

// GetKnownPublications is checked in order; the first domain matching an article host wins.
func GetKnownPublications() []Publication {
	return []Publication{
		{Domain: "techcrunch.com", Name: "TechCrunch"},
		{Domain: "theverge.com", Name: "The Verge"},
		{Domain: "arstechnica.com", Name: "Ars Technica"},
		{Domain: "wired.com", Name: "Wired"},
		{Domain: "redhat.com", Name: "Red Hat"},
		{Domain: "fedoramagazine.org", Name: "Fedora Magazine"},
		{Domain: "linux.com", Name: "Linux.com"},
		{Domain: "cloud.google.com", Name: "Google Cloud"},
		{Domain: "blog.google", Name: "Google"},
		{Domain: "github.blog", Name: "GitHub"},
		{Domain: "stackoverflow.blog", Name: "Stack Overflow"},
		{Domain: "venturebeat.com", Name: "VentureBeat"},
		{Domain: "artificialintelligence-news.com", Name: "AI News"},
		{Domain: "cointelegraph.com", Name: "Cointelegraph"},
		{Domain: "coindesk.com", Name: "CoinDesk"},
		{Domain: "cnbc.com", Name: "CNBC"},
		{Domain: "bloomberg.com", Name: "Bloomberg"},
		{Domain: "wsj.com", Name: "Wall Street Journal"},
		{Domain: "politico.com", Name: "Politico"},
		{Domain: "npr.org", Name: "NPR"},
	}
}
