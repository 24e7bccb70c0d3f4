package cmd

import (
	"go.uber.org/zap"

	"beerledger.io/BeerLedger/configs"
	"beerledger.io/BeerLedger/pkg/model"
	"beerledger.io/BeerLedger/pkg/repository"
)

type MigrateCmd struct {
	ConfigFile string `default:".BeerLedger.toml" help:"Path to config file" short:"c"`
}

func (m *MigrateCmd) Run(_ *Context) error {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(m.ConfigFile, logger)
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

	err = repo.DB.AutoMigrate(
		&model.Style{},
		&model.Glassware{},
		&model.Availability{},
		&model.Beer{},
		&model.CollectionEntry{},
	)
	if err != nil {
		logger.Error("migration failed", zap.Error(err))

		return err
	}

	logger.Info("migration complete")

	return nil
}
