package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        int
	DatabaseURL string
	AdminToken  string

	// Chat platform
	ChatBaseURL          string
	ChatToken            string
	BallotChannelID      int64
	NomChannelID         int64
	ResultsChannelID     int64
	PredictionsChannelID int64

	// Election rules
	WeightCapMember int
	WeightCapPublic int
	BallotSize      int
	ElectionHours   int
	MaxAppearances  int
	Staging         bool

	// Background sweeps
	CloseSweepInterval    time.Duration
	ReminderSweepInterval time.Duration
}

// ParseFlags validates flags, falling back to environment variables.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("clubvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Admin token for open/close operations (prefer env)")
	fs.StringVar(&cfg.ChatToken, "chat-token", "", "Chat platform bot token (prefer env)")
	fs.StringVar(&cfg.ChatBaseURL, "chat-url", "", "Chat platform API base URL")

	// Election rules
	fs.IntVar(&cfg.WeightCapMember, "cap-member", 0, "Quadratic weight cap for members")
	fs.IntVar(&cfg.WeightCapPublic, "cap-public", 0, "Quadratic weight cap for the general public")
	fs.IntVar(&cfg.BallotSize, "ballot-size", 0, "Default ballot size")
	fs.IntVar(&cfg.ElectionHours, "election-hours", 0, "Default election duration in hours")
	fs.IntVar(&cfg.MaxAppearances, "max-appearances", 0, "Max ballot appearances per book")
	fs.BoolVar(&cfg.Staging, "staging", false, "Staging mode: include zero-engagement nominations")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}
	if cfg.ChatToken == "" {
		cfg.ChatToken = os.Getenv("CHAT_BOT_TOKEN")
	}
	if cfg.ChatBaseURL == "" {
		cfg.ChatBaseURL = os.Getenv("CHAT_API_URL")
	}

	var err error
	if cfg.BallotChannelID, err = envInt64("BALLOT_CHANNEL_ID"); err != nil {
		return Config{}, err
	}
	if cfg.NomChannelID, err = envInt64("NOM_CHANNEL_ID"); err != nil {
		return Config{}, err
	}
	if cfg.ResultsChannelID, err = envInt64("RESULTS_CHANNEL_ID"); err != nil {
		return Config{}, err
	}
	if cfg.PredictionsChannelID, err = envInt64("PREDICTIONS_CHANNEL_ID"); err != nil {
		return Config{}, err
	}

	if cfg.WeightCapMember == 0 {
		cfg.WeightCapMember = envIntDefault("VOTE_WEIGHT_MEMBER", 22)
	}
	if cfg.WeightCapPublic == 0 {
		cfg.WeightCapPublic = envIntDefault("VOTE_WEIGHT_PUBLIC", 10)
	}
	if cfg.BallotSize == 0 {
		cfg.BallotSize = envIntDefault("BALLOT_SIZE", 5)
	}
	if cfg.ElectionHours == 0 {
		cfg.ElectionHours = envIntDefault("ELECTION_HOURS", 72)
	}
	if cfg.MaxAppearances == 0 {
		cfg.MaxAppearances = envIntDefault("MAX_BALLOT_APPEARANCES", 3)
	}
	if !cfg.Staging {
		cfg.Staging = os.Getenv("STAGING") == "true"
	}

	cfg.CloseSweepInterval = time.Minute
	cfg.ReminderSweepInterval = 24 * time.Hour

	return cfg, nil
}

// CapFor returns the quadratic vote-weight cap for a voter tier.
func (c Config) CapFor(member bool) int {
	if member {
		return c.WeightCapMember
	}
	return c.WeightCapPublic
}

func envInt64(name string) (int64, error) {
	s := os.Getenv(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + name + " env variable")
	}
	return v, nil
}

func envIntDefault(name string, def int) int {
	s := os.Getenv(name)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
