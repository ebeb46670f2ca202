package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastellanos/lanchonete-pos/internal/application/reports"
	"github.com/jcastellanos/lanchonete-pos/internal/application/sales"
	"github.com/jcastellanos/lanchonete-pos/internal/application/usecase"
	infrapdf "github.com/jcastellanos/lanchonete-pos/internal/infrastructure/pdf"
	"github.com/jcastellanos/lanchonete-pos/internal/infrastructure/postgres"
	infraxlsx "github.com/jcastellanos/lanchonete-pos/internal/infrastructure/xlsx"
	httpRouter "github.com/jcastellanos/lanchonete-pos/internal/interfaces/http"
	"github.com/jcastellanos/lanchonete-pos/pkg/config"
	"github.com/jcastellanos/lanchonete-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear tablas")
	}

	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	finalizeSaleUC := sales.NewFinalizeSaleUseCase(txRunner)
	saleQueriesUC := sales.NewSaleQueryUseCase(saleRepo, productRepo)
	reportUC := reports.NewReportUseCase(reportRepo, infraxlsx.NewExcelizeWriter())
	receiptUC := reports.NewReceiptUseCase(saleRepo, productRepo, infrapdf.NewMarotoReceiptGenerator(), cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		FinalizeSale: finalizeSaleUC,
		SaleQueries:  saleQueriesUC,
		ReportUC:     reportUC,
		ReceiptUC:    receiptUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
