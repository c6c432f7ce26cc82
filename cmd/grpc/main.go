package main

import (
	"catalog/infra"
	"catalog/infra/grpc"
	"catalog/pkg/config"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Catalog gRPC Service starting...")

	appConfig := config.Read()

	repository, err := infra.NewRepository(context.Background(), appConfig)
	if err != nil {
		zap.L().Fatal("failed to open repository", zap.Error(err))
	}
	defer repository.Close()

	grpcServer, err := grpc.NewServer(appConfig.GRPCPort)
	if err != nil {
		zap.L().Fatal("failed to create grpc server", zap.Error(err))
	}

	grpc.RegisterCatalogServiceServer(grpcServer.GetGRPCServer(), grpc.NewCatalogServiceServer(repository))
	grpcServer.SetServing(true)

	zap.L().Info("starting gRPC server...", zap.String("port", appConfig.GRPCPort))
	go func() {
		if err := grpcServer.Start(); err != nil {
			zap.L().Error("failed to start grpc server", zap.Error(err))
			os.Exit(1)
		}
	}()

	gracefulShutdown(grpcServer)
}

func gracefulShutdown(grpcServer *grpc.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	grpcServer.GracefulStop()

	zap.L().Info("Server gracefully stopped")
}
