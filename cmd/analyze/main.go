package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pipeline/infrastructure/chart"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/analyzing"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// analyze calcula as métricas agregadas e gera gráficos e resumo CSV.
//
//	analyze [output_dir]
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

	outputDir := cfg.Pipeline.OutputDir
	if flag.Arg(0) != "" {
		outputDir = flag.Arg(0)
	}

	conn := pgconn(ctx, cfg.Database)
	defer func() {
		conn.Close()
		logger.Info("Conexão com o banco encerrada")
	}()

	saleRepo := repository.NewSaleRepository(conn)
	service := analyzing.NewService(saleRepo, chart.NewRenderer())

	if _, err := service.Run(ctx, outputDir); err != nil {
		switch {
		case ctx.Err() != nil:
			logger.Warn("Análise interrompida pelo usuário")
		case errors.Is(err, domain.ErrEmptyStore):
			logger.Error("Nenhum dado encontrado no banco")
		default:
			logger.WithError(err).Error("Erro ao analisar dados de vendas")
		}
		os.Exit(1)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
