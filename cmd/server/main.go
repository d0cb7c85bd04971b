package main

import (
	"net/http"

	"purenest-be/internal/cart"
	"purenest-be/internal/config"
	"purenest-be/internal/db"
	"purenest-be/internal/logger"
	"purenest-be/internal/order"
	"purenest-be/internal/payment"
	"purenest-be/internal/product"
	"purenest-be/internal/transport"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, cartSvc, productRepo)

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, orderRepo, cartSvc, gateway)

	router := transport.NewRouter(transport.Handlers{
		Product: transport.NewProductHandler(productRepo),
		Cart:    transport.NewCartHandler(cartSvc),
		Order:   transport.NewOrderHandler(orderSvc),
		Payment: transport.NewPaymentHandler(paymentSvc),
	}, cfg.JWTSecret)

	addr := ":" + cfg.AppPort
	logger.L().Info("server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
