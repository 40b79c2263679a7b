package telegram

import (
	"fmt"
	"html"
	"iris-dashboard/models/entities"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

func formatDashboard(update *entities.DashboardUpdate, userName string, now time.Time) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("📊 <b>Dashboard for %s</b>\n\n", html.EscapeString(userName)))

	if update.Xrp != nil {
		msg.WriteString(fmt.Sprintf("💰 <b>XRP</b> <code>$%s</code> (%+.2f%% 24h)\n", humanize.FormatFloat("#,###.####", update.Xrp.CurrentPrice), update.Xrp.Change24h))
		msg.WriteString(fmt.Sprintf("🏛 Market Cap: <code>$%s</code>\n", humanize.Comma(int64(update.Xrp.MarketCap))))
		for _, day := range update.Xrp.DailyAverages {
			msg.WriteString(fmt.Sprintf("   %s: <code>$%s</code>\n", day.Date, humanize.FormatFloat("#,###.####", day.AvgPrice)))
		}
		msg.WriteString("\n")
	}

	cities := make([]string, 0, len(update.Weather))
	for city, snapshot := range update.Weather {
		if snapshot != nil {
			cities = append(cities, city)
		}
	}
	sort.Strings(cities)
	for _, city := range cities {
		current := update.Weather[city].Current
		msg.WriteString(fmt.Sprintf("🌤 <b>%s</b> %.1f°F, feels like %.1f°F, wind %.1f mph\n",
			html.EscapeString(city), current.Temperature, current.ApparentTemperature, current.WindSpeed))
	}
	if len(cities) > 0 {
		msg.WriteString("\n")
	}

	if len(update.News) > 0 {
		msg.WriteString("📰 <b>Headlines</b>\n")
		writeArticles(&msg, update.News, newsHeadlines, now)
	}

	return msg.String()
}

func formatTechNews(articles []entities.NewsArticle, now time.Time) string {
	var msg strings.Builder
	msg.WriteString("🧑‍💻 <b>Tech news</b>\n\n")
	if len(articles) == 0 {
		msg.WriteString("Nothing new right now.\n")
		return msg.String()
	}
	writeArticles(&msg, articles, techNewsMessages, now)
	return msg.String()
}

func writeArticles(msg *strings.Builder, articles []entities.NewsArticle, limit int, now time.Time) {
	for i, article := range articles {
		if i == limit {
			break
		}
		msg.WriteString(fmt.Sprintf("• <a href=\"%s\">%s</a> <i>(%s, %s)</i>\n",
			html.EscapeString(article.URL), html.EscapeString(article.Title),
			html.EscapeString(article.Source), humanize.RelTime(article.PublishedAt, now, "ago", "from now")))
	}
}

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeWelcome:
		msg := "👋 Hi! I'm <b>IRIS</b> 🤖\n\n"
		msg += "I gather the XRP price, the local weather and the latest headlines into one dashboard.\n\n"
		msg += "✅ <b>Want a daily digest?</b> Type /subscribe.\n"
		msg += "💬 <b>Need help?</b> Type /help for a list of commands."
		return msg

	case MessageTypeHelp:
		msg := "🤖 <b>IRIS</b> – Help Guide 📢\n\n"
		msg += "📝 <b>Commands available:</b>\n"
		msg += "✅ /subscribe – Receive the dashboard every morning.\n"
		msg += "❌ /unsubscribe – Stop the daily digest.\n"
		msg += "📊 /dashboard – Get the dashboard now.\n"
		msg += "🧑‍💻 /technews – Get the latest tech news.\n"
		msg += "💡 /help – Show this help message.\n"
		return msg

	case MessageTypeSubscribe:
		msg := "🎉 <b>Subscription Confirmed!</b> ✅\n\n"
		msg += "Your first dashboard is on its way. Type /unsubscribe to stop at any time.\n"
		return msg

	case MessageTypeUnsubscribe:
		msg := "👋 <b>You've Unsubscribed</b> ❌\n\n"
		msg += "Type /subscribe anytime to get the digest again! 🚀\n"
		return msg

	case MessageTypeNoData:
		return "😔 No data is available right now, please try again in a few minutes."

	default:
		msg := "😔 <b>Oops! Unknown command</b>\n\n"
		msg += "Type /help for the list of commands."
		return msg
	}
}
