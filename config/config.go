package config

import (
	"os"
	"strings"
)

var (
	BOT_TOKEN      = ""           // Platform bot token, required
	DEFAULT_PREFIX = "!"          // Command prefix used when a guild has no custom one
	API_BASE_URL   = ""           // Base URL of the platform REST API, e.g. "https://chat.example.com/api"
	GATEWAY_URL    = ""           // Websocket URL of the platform event gateway
	MYSQL_DSN      = ""           // MySQL will be used if this is set
	SQLITE_FILE    = "botbase.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS   = "0.0.0.0:8080"
	TLS_DOMAINS    = "" // e.g. "example.com,example2.com"
	DEBUG_MODE     = true
)

func init() {
	readEnvString("BOT_TOKEN", &BOT_TOKEN)
	readEnvString("DEFAULT_PREFIX", &DEFAULT_PREFIX)
	readEnvString("API_BASE_URL", &API_BASE_URL)
	readEnvString("GATEWAY_URL", &GATEWAY_URL)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}
