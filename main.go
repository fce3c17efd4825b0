package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentionbot/internal/adapters/sender"
	"mentionbot/internal/adapters/source"
	"mentionbot/internal/core/domain"
	"mentionbot/internal/core/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	log.Info().Msg("starting mentionbot...")

	// local development convenience, a missing .env is fine
	_ = godotenv.Load()

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	viper.SetDefault("bot.poll_interval", "1s")
	viper.SetDefault("bot.call_timeout", "10s")
	viper.SetDefault("bot.health_check_every", 60)
	viper.SetDefault("match.exact", true)
	viper.SetDefault("match.tie_break", "first")
	// the keyword historically only matched lower-case; set true to restore that
	viper.SetDefault("whisper.case_sensitive", false)

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	if err = viper.BindEnv("slack.bot_token", "SLACK_BOT_TOKEN"); err != nil {
		log.Fatal().Err(err).Msg("could not bind token env var")
	}

	setupLogging()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	token := viper.GetString("slack.bot_token")
	if token == "" {
		log.Fatal().Msg("slack bot token not set, provide SLACK_BOT_TOKEN")
	}

	api := slack.New(token)

	var commands []domain.Command
	if err = viper.UnmarshalKey("commands", &commands); err != nil {
		log.Fatal().Err(err).Msg("invalid command registry in config")
	}
	if len(commands) == 0 {
		commands = []domain.Command{{Name: "do", Description: "do something"}}
	}

	for _, c := range commands {
		log.Info().Str("command", c.Name).Msg("registering command")
	}

	dispatcher := service.NewDispatcher(service.DispatcherParams{
		Registry: domain.NewRegistry(commands),
		Sender:   sender.NewSlack(api),
		Match: domain.MatchOptions{
			Exact:    viper.GetBool("match.exact"),
			TieBreak: domain.TieBreak(viper.GetString("match.tie_break")),
		},
		WhisperCaseSensitive: viper.GetBool("whisper.case_sensitive"),
	})

	pollInterval, err := time.ParseDuration(viper.GetString("bot.poll_interval"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid poll interval in config")
	}

	callTimeout, err := time.ParseDuration(viper.GetString("bot.call_timeout"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid call timeout in config")
	}

	poller := service.NewPoller(service.PollerParams{
		Source:           source.NewSlack(api),
		Dispatcher:       dispatcher,
		Interval:         pollInterval,
		CallTimeout:      callTimeout,
		HealthCheckEvery: viper.GetInt("bot.health_check_every"),
	})

	if err = poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("poll loop stopped")
	}

	log.Info().Msg("shutting down")
}

func setupLogging() {
	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if logFile := viper.GetString("bot.log_file"); logFile != "" {
		log.Logger = log.Output(zerolog.MultiLevelWriter(os.Stderr, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
		}))
	}
}
