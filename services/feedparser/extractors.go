package feedparser

import (
	"regexp"
	"strings"
)

var (
	titleChain = chain{
		pattern(`<title><!\[CDATA\[(.*?)\]\]></title>`),
		pattern(`(?s)<title(?:\s[^>]*)?>(.*?)</title>`),
	}

	linkChain = chain{
		pattern(`<link>(.*?)</link>`),
		pattern(`<link[^>]*href="([^"]+)"`),
		pattern(`<guid[^>]*>(.*?)</guid>`),
	}

	publishedChain = chain{
		pattern(`<pubDate>(.*?)</pubDate>`),
		pattern(`<published>(.*?)</published>`),
		pattern(`<updated>(.*?)</updated>`),
		pattern(`<dc:date>(.*?)</dc:date>`),
	}

	descriptionChain = chain{
		pattern(`(?s)<description><!\[CDATA\[(.*?)\]\]></description>`),
		pattern(`(?s)<description(?:\s[^>]*)?>(.*?)</description>`),
		pattern(`(?s)<summary(?:\s[^>]*)?>(.*?)</summary>`),
		pattern(`(?s)<content[^>]*>(.*?)</content>`),
	}

	sourceChain = chain{
		pattern(`<source[^>]*>(.*?)</source>`),
		pattern(`<dc:creator>(.*?)</dc:creator>`),
	}
)

func pattern(expr string) extractor {
	re := regexp.MustCompile(expr)
	return func(block string) (string, bool) {
		match := re.FindStringSubmatch(block)
		if len(match) < 2 || strings.TrimSpace(match[1]) == "" {
			return "", false
		}
		return match[1], true
	}
}

func (c chain) first(block string) string {
	for _, extract := range c {
		if value, ok := extract(block); ok {
			return value
		}
	}
	return ""
}

func extractItem(block string) rawItem {
	return rawItem{
		title:       titleChain.first(block),
		link:        linkChain.first(block),
		published:   publishedChain.first(block),
		description: descriptionChain.first(block),
		source:      sourceChain.first(block),
	}
}
