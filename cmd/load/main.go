package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-pipeline/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline/internal/config"
	"github.com/vfg2006/sales-pipeline/internal/domain"
	"github.com/vfg2006/sales-pipeline/internal/usecases/loading"
	"github.com/vfg2006/sales-pipeline/internal/usecases/validating"
	"github.com/vfg2006/sales-pipeline/pkg/log"
)

// load grava o CSV limpo no banco, em lotes com upsert por order_id.
//
//	load [input_file] [batch_size]
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

	inputFile := cfg.Pipeline.CleanedFile
	if flag.Arg(0) != "" {
		inputFile = flag.Arg(0)
	}
	batchSize := cfg.Pipeline.BatchSize
	if flag.Arg(1) != "" {
		batchSize, err = strconv.Atoi(flag.Arg(1))
		if err != nil {
			logger.Errorf("Tamanho de lote inválido: %s", flag.Arg(1))
			os.Exit(1)
		}
	}

	conn := pgconn(ctx, cfg.Database)
	defer func() {
		conn.Close()
		logger.Info("Conexão com o banco encerrada")
	}()

	saleRepo := repository.NewSaleRepository(conn)
	service := loading.NewService(saleRepo, validating.NewService(), batchSize)

	if _, err := service.Run(ctx, inputFile); err != nil {
		var validationErr *domain.ValidationError
		switch {
		case ctx.Err() != nil:
			logger.Warn("Carga de dados interrompida pelo usuário")
		case errors.Is(err, domain.ErrInputNotFound):
			logger.Errorf("Arquivo de entrada não encontrado: %s", inputFile)
		case errors.As(err, &validationErr):
			logger.Errorf("Validação dos dados falhou: %v", validationErr.Issues)
		default:
			logger.WithError(err).Error("Erro ao carregar dados no banco")
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
