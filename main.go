package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/xeptore/yamdl/cache"
	"github.com/xeptore/yamdl/config"
	"github.com/xeptore/yamdl/constant"
	"github.com/xeptore/yamdl/log"
	"github.com/xeptore/yamdl/yandex"
	"github.com/xeptore/yamdl/yandex/catalog"
	"github.com/xeptore/yamdl/yandex/downloader"
	"github.com/xeptore/yamdl/yandex/lossless"
	"github.com/xeptore/yamdl/yandex/metadata"
)

func main() {
	logger := log.NewDefault()

	//nolint:exhaustruct
	app := &cli.Command{
		Name:    "yamdl",
		Version: constant.Version,
		Metadata: map[string]any{
			"compiled_at": constant.CompileTime,
		},
		Suggest:                    true,
		Usage:                      "Yandex Music Downloader",
		EnableShellCompletion:      true,
		ShellCompletionCommandName: "shell-completion",
		AllowExtFlags:              false,
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:     "config",
				Usage:    "Config file path",
				Required: false,
			},
		},
		Commands: []*cli.Command{
			//nolint:exhaustruct
			{
				Name:      "download",
				Usage:     "Download a track, album, playlist, or artist discography link",
				ArgsUsage: "[link]",
				Action:    download,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			os.Exit(1)
		}

		var exitCode exitCodeError
		if errors.As(err, &exitCode) {
			os.Exit(int(exitCode))
		}

		logger.Error().Err(err).Msg("Application exited with error")
		os.Exit(10)
	}
}

type exitCodeError int

func (e exitCodeError) Error() string {
	return "error with exit code: " + strconv.Itoa(int(e))
}

func download(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewDefault()

	if err := godotenv.Load(); nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env file: %v", err)
		}
		logger.Info().Msg(".env file was not found")
	} else {
		logger.Debug().Msg(".env file was loaded")
	}

	conf, err := config.Load(cmd.String("config"))
	if nil != err {
		return fmt.Errorf("load config: %v", err)
	}

	logger = log.FromConfig(conf.Log)

	logger.Debug().Dict("config", conf.ToDict()).Msg("Config loaded")

	locator := cmd.Args().First()
	if locator == "" {
		prompt := &survey.Input{Message: "Link to download:"} //nolint:exhaustruct
		if err := survey.AskOne(prompt, &locator, survey.WithValidator(survey.Required)); nil != err {
			return fmt.Errorf("prompt for link: %v", err)
		}
	}

	link, err := yandex.ParseLink(locator)
	if nil != err {
		if errors.Is(err, yandex.ErrInvalidLocator) {
			logger.Error().Str("link", locator).Msg("Unsupported link. Track, album, playlist, and artist links are supported.")
			return exitCodeError(2)
		}

		return fmt.Errorf("parse link: %w", err)
	}

	var metaCache *cache.Metadata
	if *conf.Cache.Enabled {
		metaCache = cache.NewMetadata(
			logger,
			conf.Cache.Path,
			time.Duration(conf.Cache.TTLHours)*time.Hour,
		)
	}

	dl, err := downloader.New(
		conf,
		catalog.New(logger, conf.Yandex),
		lossless.NewFetcher(logger, conf.Yandex),
		cache.NewCovers(),
		metadata.NewExtractor(logger, metaCache),
	)
	if nil != err {
		return fmt.Errorf("create downloader: %v", err)
	}

	sum, err := dl.Download(ctx, logger, link)
	if nil != err {
		return fmt.Errorf("download link: %w", err)
	}

	for _, failure := range sum.Failures {
		logger.Warn().Err(failure.Reason).Str("entity", failure.Entity).Msg("Download failed")
	}

	logger.Info().
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Msg("Download finished")

	if sum.Failed > 0 && sum.Succeeded == 0 {
		return exitCodeError(3)
	}

	return nil
}
