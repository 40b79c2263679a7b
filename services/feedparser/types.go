package feedparser

import (
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"regexp"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	descriptionMaxLength = 200
	ellipsis             = "..."
)

var (
	ErrInvalidLink = errors.New("item link is not a valid URL")

	primaryContainer   = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	secondaryContainer = regexp.MustCompile(`(?s)<entry>(.*?)</entry>`)
	markupTag          = regexp.MustCompile(`<[^>]+>`)
	cdataSection       = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

	blacklistedSources = map[string]struct{}{"": {}, "news": {}, "unknown": {}}
)

type Service interface {
	Parse(raw, category string, limit int) []entities.NewsArticle
}

type Impl struct {
	now          func() time.Time
	publications []constants.Publication
	strict       *gofeed.Parser
}

// rawItem holds the untouched field values of one container, before cleaning.
type rawItem struct {
	title       string
	link        string
	published   string
	description string
	source      string
}

// extractor returns the first capture group of its pattern when it is not blank.
type extractor func(block string) (string, bool)

type chain []extractor
