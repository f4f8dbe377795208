package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Timing struct {
	BotDelay    time.Duration
	TrickDelay  time.Duration
	RedealDelay time.Duration
}

type Config struct {
	Port           int
	StaticDir      string
	AllowedOrigins []string
	LogLevel       string

	Timing        Timing
	BotsPlayCards bool

	// per connection inbound limit, messages per second
	MsgRate  float64
	MsgBurst int

	SendBuffer      int
	ShutdownTimeout time.Duration
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvMillis(key string, def int) time.Duration {
	return time.Duration(getenvInt(key, def)) * time.Millisecond
}

func getenvList(key, def string) []string {
	var out []string
	for _, s := range strings.Split(getenv(key, def), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Load() Config {
	return Config{
		Port:           getenvInt("PORT", 3000),
		StaticDir:      getenv("STATIC_DIR", "./public"),
		AllowedOrigins: getenvList("ALLOWED_ORIGINS", "*"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		Timing: Timing{
			BotDelay:    getenvMillis("BOT_DELAY_MS", 1000),
			TrickDelay:  getenvMillis("TRICK_DELAY_MS", 1500),
			RedealDelay: getenvMillis("REDEAL_DELAY_MS", 2000),
		},
		BotsPlayCards:   getenvBool("BOTS_PLAY_CARDS", true),
		MsgRate:         getenvFloat("MSG_RATE", 20),
		MsgBurst:        getenvInt("MSG_BURST", 40),
		SendBuffer:      getenvInt("SEND_BUFFER", 64),
		ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SEC", 10)) * time.Second,
	}
}
