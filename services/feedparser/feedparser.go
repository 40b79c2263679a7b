package feedparser

import (
	"fmt"
	"html"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

func New() *Impl {
	return &Impl{
		now:          time.Now,
		publications: constants.GetKnownPublications(),
		strict:       gofeed.NewParser(),
	}
}

// Parse extracts at most limit articles from raw syndication markup. A limit of zero or less
// means no limit. Broken items are skipped, they never abort the batch.
func (parser *Impl) Parse(raw, category string, limit int) []entities.NewsArticle {
	items := parser.locateItems(raw, limit)
	capturedAt := parser.now()

	articles := make([]entities.NewsArticle, 0, len(items))
	for _, item := range items {
		article, err := parser.normalize(item, category, capturedAt)
		if err != nil {
			log.Warn().Err(err).
				Str(constants.LogCategory, category).
				Msgf("Cannot parse feed item, item ignored")
			continue
		}
		if article == nil {
			continue
		}
		articles = append(articles, *article)
	}

	return articles
}

func (parser *Impl) locateItems(raw string, limit int) []rawItem {
	blocks := primaryContainer.FindAllStringSubmatch(raw, -1)
	if len(blocks) == 0 {
		blocks = secondaryContainer.FindAllStringSubmatch(raw, -1)
	}
	if len(blocks) == 0 {
		return parser.strictItems(raw, limit)
	}

	if limit > 0 && len(blocks) > limit {
		blocks = blocks[:limit]
	}

	items := make([]rawItem, 0, len(blocks))
	for _, block := range blocks {
		items = append(items, extractItem(block[1]))
	}
	return items
}

// strictItems covers containers carrying attributes (RSS 1.0 rdf:about, namespaced Atom entries)
// that the literal container patterns do not match.
func (parser *Impl) strictItems(raw string, limit int) []rawItem {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	feed, err := parser.strict.ParseString(raw)
	if err != nil {
		log.Debug().Err(err).Msg("No feed item found in markup")
		return nil
	}

	items := make([]rawItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if limit > 0 && len(items) == limit {
			break
		}
		items = append(items, fromFeedItem(entry))
	}
	return items
}

func fromFeedItem(entry *gofeed.Item) rawItem {
	item := rawItem{
		title:       entry.Title,
		link:        entry.Link,
		published:   entry.Published,
		description: entry.Description,
	}
	if item.link == "" {
		item.link = entry.GUID
	}
	if item.published == "" {
		item.published = entry.Updated
	}
	if item.description == "" {
		item.description = entry.Content
	}
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		item.source = entry.DublinCoreExt.Creator[0]
	}
	if item.source == "" && len(entry.Authors) > 0 && entry.Authors[0] != nil {
		item.source = entry.Authors[0].Name
	}
	return item
}

func (parser *Impl) normalize(item rawItem, category string, capturedAt time.Time) (*entities.NewsArticle, error) {
	title := cleanText(item.title)
	link := strings.TrimSpace(html.UnescapeString(unwrapCDATA(item.link)))
	if title == "" || link == "" {
		return nil, nil
	}

	parsedLink, err := url.Parse(link)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLink, err)
	}

	return &entities.NewsArticle{
		Title:       title,
		URL:         link,
		Source:      parser.resolveSource(parsedLink, item.source, category),
		Category:    category,
		Description: Truncate(cleanText(item.description), descriptionMaxLength),
		PublishedAt: ParseDate(item.published, capturedAt),
	}, nil
}

func (parser *Impl) resolveSource(link *url.URL, explicit, category string) string {
	if name, found := parser.publicationName(link.Hostname()); found {
		return name
	}

	source := cleanText(explicit)
	if _, blacklisted := blacklistedSources[strings.ToLower(source)]; blacklisted {
		if category == "" {
			return constants.DefaultSourceName
		}
		return category
	}
	return source
}

func (parser *Impl) publicationName(host string) (string, bool) {
	host = strings.ToLower(host)
	if host == "" {
		return "", false
	}
	for _, publication := range parser.publications {
		if host == publication.Domain || strings.HasSuffix(host, "."+publication.Domain) {
			return publication.Name, true
		}
	}
	return "", false
}

// ParseDate reads an internet-mail date, then any other common layout; fallback is returned when
// the value is empty or unreadable.
func ParseDate(value string, fallback time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if parsed, err := mail.ParseDate(value); err == nil {
		return parsed
	}
	if parsed, err := dateparse.ParseAny(value); err == nil {
		return parsed
	}
	return fallback
}

// Truncate cuts text to max characters and appends an ellipsis when it was longer.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + ellipsis
}

func cleanText(text string) string {
	text = markupTag.ReplaceAllString(unwrapCDATA(text), "")
	return strings.TrimSpace(html.UnescapeString(text))
}

func unwrapCDATA(text string) string {
	return cdataSection.ReplaceAllString(text, "$1")
}
