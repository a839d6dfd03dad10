package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/usecases/generating"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// generate produz o CSV bruto de vendas sintéticas.
//
//	generate [record_count]
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

	recordCount := cfg.Pipeline.RecordCount
	if flag.Arg(0) != "" {
		recordCount, err = strconv.Atoi(flag.Arg(0))
		if err != nil {
			logger.Errorf("Quantidade de registros inválida: %s", flag.Arg(0))
			os.Exit(1)
		}
	}

	service := generating.NewService()
	if err := service.Run(ctx, recordCount, cfg.Pipeline.RawFile); err != nil {
		if ctx.Err() != nil {
			logger.Warn("Geração de dados interrompida pelo usuário")
		} else {
			logger.WithError(err).Error("Erro ao gerar dados de vendas")
		}
		os.Exit(1)
	}
}
