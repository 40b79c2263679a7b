package constants

import (
	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	ExternalName = "IRIS"
	Version      = "1.0.0"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// Name displayed by the dashboard greeting.
	UserName = "USER_NAME"

	// Weather locations; the city names are also the weather keys of dashboard updates.
	PrimaryCity        = "PRIMARY_CITY"
	PrimaryLatitude    = "PRIMARY_LATITUDE"
	PrimaryLongitude   = "PRIMARY_LONGITUDE"
	SecondaryCity      = "SECONDARY_CITY"
	SecondaryLatitude  = "SECONDARY_LATITUDE"
	SecondaryLongitude = "SECONDARY_LONGITUDE"

	// HTTP listener.
	ServerHost = "SERVER_HOST"
	ServerPort = "SERVER_PORT"

	// Directory holding Dashboard.html and TechNews.html.
	StaticDir = "STATIC_DIR"

	// Seconds between two periodic broadcasts.
	UpdateInterval = "UPDATE_INTERVAL"

	// Seconds to wait before the first periodic broadcast.
	StartupDelay = "STARTUP_DELAY"

	// Seconds to wait after a failed broadcast cycle.
	ErrorBackoff = "ERROR_BACKOFF"

	// Per-feed request timeout, in seconds.
	RSSTimeout = "RSS_TIMEOUT"

	// User agent sent to feed hosts.
	UserAgent = "USER_AGENT"

	// CoinGecko coin identifier and quote currency.
	CoinID     = "COIN_ID"
	VsCurrency = "VS_CURRENCY"

	// Upstream base URLs.
	CoingeckoBaseURL = "COINGECKO_BASE_URL"
	OpenMeteoBaseURL = "OPENMETEO_BASE_URL"

	// Location used to bucket price samples into days and to run cron jobs.
	Timezone = "TIMEZONE"

	// Timezone requested from the weather provider.
	WeatherTimezone = "WEATHER_TIMEZONE"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Boolean; keeps last-known-good snapshots across restarts.
	SnapshotPersistence = "SNAPSHOT_PERSISTENCE"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	// Cron tab to the telegram daily digest.
	DigestCronTab = "DIGEST_CRON_TAB"

	// Refresh requests allowed per second and per session, and burst size.
	RefreshRate  = "REFRESH_RATE"
	RefreshBurst = "REFRESH_BURST"

	defaultUserName            = "Zack"
	defaultPrimaryCity         = "Irving"
	defaultPrimaryLatitude     = 32.8140
	defaultPrimaryLongitude    = -96.9489
	defaultSecondaryCity       = "Lewisville"
	defaultSecondaryLatitude   = 33.0462
	defaultSecondaryLongitude  = -96.9942
	defaultServerHost          = "0.0.0.0"
	defaultServerPort          = 8080
	defaultStaticDir           = "."
	defaultUpdateInterval      = 300
	defaultStartupDelay        = 5
	defaultErrorBackoff        = 60
	defaultRSSTimeout          = 10
	defaultUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultCoinID              = "ripple"
	defaultVsCurrency          = "usd"
	defaultCoingeckoBaseURL    = "https://api.coingecko.com"
	defaultOpenMeteoBaseURL    = "https://api.open-meteo.com"
	defaultTimezone            = "UTC"
	defaultWeatherTimezone     = "America/Chicago"
	defaultSqliteURL           = "iris-dashboard.db"
	defaultSnapshotPersistence = true
	defaultTelegramBotToken    = ""
	defaultHealthCrontab       = "*/10 * * * *"
	defaultDigestCrontab       = "0 7 * * *"
	defaultRefreshRate         = 1.0
	defaultRefreshBurst        = 3
	defaultLogLevel            = zerolog.InfoLevel
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		LogLevel:            defaultLogLevel.String(),
		UserName:            defaultUserName,
		PrimaryCity:         defaultPrimaryCity,
		PrimaryLatitude:     defaultPrimaryLatitude,
		PrimaryLongitude:    defaultPrimaryLongitude,
		SecondaryCity:       defaultSecondaryCity,
		SecondaryLatitude:   defaultSecondaryLatitude,
		SecondaryLongitude:  defaultSecondaryLongitude,
		ServerHost:          defaultServerHost,
		ServerPort:          defaultServerPort,
		StaticDir:           defaultStaticDir,
		UpdateInterval:      defaultUpdateInterval,
		StartupDelay:        defaultStartupDelay,
		ErrorBackoff:        defaultErrorBackoff,
		RSSTimeout:          defaultRSSTimeout,
		UserAgent:           defaultUserAgent,
		CoinID:              defaultCoinID,
		VsCurrency:          defaultVsCurrency,
		CoingeckoBaseURL:    defaultCoingeckoBaseURL,
		OpenMeteoBaseURL:    defaultOpenMeteoBaseURL,
		Timezone:            defaultTimezone,
		WeatherTimezone:     defaultWeatherTimezone,
		SqliteURL:           defaultSqliteURL,
		SnapshotPersistence: defaultSnapshotPersistence,
		TelegramBotToken:    defaultTelegramBotToken,
		HealthCronTab:       defaultHealthCrontab,
		DigestCronTab:       defaultDigestCrontab,
		RefreshRate:         defaultRefreshRate,
		RefreshBurst:        defaultRefreshBurst,
	}
}
