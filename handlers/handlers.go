// Package handlers is the bot's HTTP surface: invite lookups for higher-level
// features and a small blacklist admin API.
package handlers

import (
	"botbase/bot"
)

var runningBot *bot.Bot

func Init(b *bot.Bot) {
	runningBot = b
}
