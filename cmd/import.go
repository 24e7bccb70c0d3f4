package cmd

import (
	"context"

	"go.uber.org/zap"

	"beerledger.io/BeerLedger/configs"
	"beerledger.io/BeerLedger/pkg/importer"
	"beerledger.io/BeerLedger/pkg/repository"
)

type ImportCmd struct {
	ConfigFile string `default:".BeerLedger.toml" help:"Path to config file" short:"c"`
	File       string `arg:"" help:"Path to a legacy SQL dump file" type:"existingfile"`
}

func (i *ImportCmd) Run(_ *Context) error {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(i.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return err
	}
	defer repo.Close()

	summary, err := importer.New(repo, logger).Run(context.Background(), i.File)
	if err != nil {
		logger.Error("import failed", zap.Error(err))

		return err
	}

	logger.Info("import complete",
		zap.Int("total", summary.Total),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))

	if summary.Failed > 0 {
		logger.Warn("some rows could not be imported", zap.Error(summary.RowErrors))
	}

	return nil
}
