package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	LogFile         string        `env:"LOG_FILE,default=chatbox.log"`
	AuthedUserID    string        `env:"AUTHED_USER_ID,default=me"`
	ScrollThreshold int           `env:"SCROLL_THRESHOLD,default=200"`
	RosterFile      string        `env:"ROSTER_FILE,default=roster.yaml"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CensorCharacter string        `env:"CENSOR_CHARACTER,default=*"`
	ReadOnly        bool          `env:"READ_ONLY,default=false"`
	NatsURL         string        `env:"NATS_URL"`
	NatsSubject     string        `env:"NATS_SUBJECT,default=chat"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=2s"`
	SinkTimeout     time.Duration `env:"SINK_TIMEOUT,default=500ms"`
	ReplayDelay     time.Duration `env:"REPLAY_DELAY,default=300ms"`
	HistoryLimit    int           `env:"HISTORY_LIMIT,default=500"`
	Title           string        `env:"TITLE,default=Chat Web App"`
	Theme           string        `env:"THEME,default=light"`
	Colours         string        `env:"COLOURS"`
}

// LoadConfig reads the environment. A .env file is the caller's business.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.ScrollThreshold < 0 {
		return Config{}, fmt.Errorf("config error: SCROLL_THRESHOLD must be positive, got %d", config.ScrollThreshold)
	}
	if _, err := CharacterRune(config.CensorCharacter); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	return config, nil
}

// Level parses LOG_LEVEL, falling back to INFO.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Words splits CENSORED_WORDS on commas.
func (c Config) Words() []string {
	return lo.FilterMap(strings.Split(c.CensoredWords, ","), func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(w)
		return w, w != ""
	})
}

// Palette parses COLOURS, a comma separated list of name=#hex pairs.
// Unknown or malformed entries are skipped.
func (c Config) Palette() map[string]lipgloss.Color {
	palette := make(map[string]lipgloss.Color)
	for _, pair := range strings.Split(c.Colours, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" || !strings.HasPrefix(value, "#") {
			continue
		}
		palette[strings.ToLower(name)] = lipgloss.Color(value)
	}
	return palette
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
