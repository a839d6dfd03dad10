package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/cleaning"
	"github.com/vfg2006/sales-pipeline/internal/usecases/validating"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// clean transforma o CSV bruto no CSV limpo.
//
//	clean [input_file] [output_file]
func main() {
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Setup(cfg.App.LogLevel, cfg.App.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, _ = log.WithRunID(ctx)
	logger := log.ForContext(ctx)

	inputFile := cfg.Pipeline.RawFile
	if flag.Arg(0) != "" {
		inputFile = flag.Arg(0)
	}
	outputFile := cfg.Pipeline.CleanedFile
	if flag.Arg(1) != "" {
		outputFile = flag.Arg(1)
	}

	service := cleaning.NewService(validating.NewService())
	if _, err := service.Run(ctx, inputFile, outputFile); err != nil {
		switch {
		case ctx.Err() != nil:
			logger.Warn("Limpeza de dados interrompida pelo usuário")
		case errors.Is(err, domain.ErrInputNotFound):
			logger.Errorf("Arquivo de entrada não encontrado: %s", inputFile)
		default:
			logger.WithError(err).Error("Erro ao limpar dados de vendas")
		}
		os.Exit(1)
	}
}
