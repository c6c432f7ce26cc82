package main

import (
	"catalog/app"
	"catalog/app/category"
	"catalog/app/product"
	"catalog/infra"
	"catalog/infra/rabbitmq"
	"catalog/internal/middleware"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

// brokerHealth is implemented by publishers that keep a broker connection.
type brokerHealth interface {
	IsHealthy() bool
}

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

// handle adapts a handler to fiber: it fills the request from the JSON body
// and the path params, and renders the response with the given status.
func handle[R Request, Res Response](handler HandlerInterface[R, Res], status int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		res, err := handler.Handle(c.UserContext(), &req)
		if err != nil {
			return writeError(c, err)
		}

		if status == fiber.StatusNoContent {
			c.Status(status)
			return nil
		}

		return c.Status(status).JSON(res)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("storageDriver", appConfig.StorageDriver),
	)

	repository, err := infra.NewRepository(context.Background(), appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open repository", zap.Error(err))
	}
	defer repository.Close()

	var publisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		rabbitPublisher, err := rabbitmq.NewPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Fatal("Failed to create event publisher", zap.Error(err))
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	} else {
		zap.L().Info("RABBITMQ_URL not set, event publishing disabled")
	}

	app := newApp(repository, publisher)

	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)
}

func newApp(repository app.Repository, publisher events.Publisher) *fiber.App {
	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	app.Use(middleware.NewRequestIDMiddleware())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := repository.Ping(c.UserContext()); err != nil {
			return writeError(c, httperror.ServiceUnavailable(
				"health.store_unavailable",
				"Store is not reachable",
				err,
			))
		}

		body := fiber.Map{"status": "ok"}
		// Publishing is best effort, so a lost broker degrades but does not fail.
		if broker, ok := publisher.(brokerHealth); ok {
			if broker.IsHealthy() {
				body["broker"] = "ok"
			} else {
				zap.L().Warn("Event broker connection is closed")
				body["status"] = "degraded"
				body["broker"] = "unavailable"
			}
		}
		return c.JSON(body)
	})

	categories := app.Group("/categories")
	categories.Get("/", handle[category.GetCategoriesRequest, category.GetCategoriesResponse](category.NewGetCategoriesHandler(repository), fiber.StatusOK))
	categories.Post("/", handle[category.CreateCategoryRequest, category.CreateCategoryResponse](category.NewCreateCategoryHandler(repository, publisher), fiber.StatusCreated))
	categories.Get("/:id", handle[category.GetCategoryRequest, category.GetCategoryResponse](category.NewGetCategoryHandler(repository), fiber.StatusOK))
	categories.Put("/:id", handle[category.UpdateCategoryRequest, category.UpdateCategoryResponse](category.NewUpdateCategoryHandler(repository, publisher), fiber.StatusOK))
	categories.Patch("/:id", handle[category.PatchCategoryRequest, category.PatchCategoryResponse](category.NewPatchCategoryHandler(repository, publisher), fiber.StatusOK))
	categories.Delete("/:id", handle[category.DeleteCategoryRequest, category.DeleteCategoryResponse](category.NewDeleteCategoryHandler(repository, publisher), fiber.StatusNoContent))
	categories.Get("/:id/products", handle[category.GetCategoryProductsRequest, category.GetCategoryProductsResponse](category.NewGetCategoryProductsHandler(repository), fiber.StatusOK))

	products := app.Group("/products")
	products.Get("/", handle[product.GetProductsRequest, product.GetProductsResponse](product.NewGetProductsHandler(repository), fiber.StatusOK))
	products.Post("/", handle[product.CreateProductRequest, product.CreateProductResponse](product.NewCreateProductHandler(repository, publisher), fiber.StatusCreated))
	products.Get("/:id", handle[product.GetProductRequest, product.GetProductResponse](product.NewGetProductHandler(repository), fiber.StatusOK))
	products.Put("/:id", handle[product.UpdateProductRequest, product.UpdateProductResponse](product.NewUpdateProductHandler(repository, publisher), fiber.StatusOK))
	products.Patch("/:id", handle[product.PatchProductRequest, product.PatchProductResponse](product.NewPatchProductHandler(repository, publisher), fiber.StatusOK))
	products.Delete("/:id", handle[product.DeleteProductRequest, product.DeleteProductResponse](product.NewDeleteProductHandler(repository, publisher), fiber.StatusNoContent))

	return app
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		// Wrapped causes are logged, not sent to the client.
		if _, isCause := httpErr.Details.(error); httpErr.Details != nil && !isCause {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
