package main

import (
	"fmt"

	"backend/configs"
	"backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := configs.LoadConfig()

	// DB
	configs.ConnectionDB(cfg.DBSource)
	configs.SetupDatabase()

	if err := configs.SeedLookups(); err != nil {
		logrus.WithError(err).Fatal("seed lookups failed")
	}
	if err := configs.SeedSuperuser(); err != nil {
		logrus.WithError(err).Fatal("seed superuser failed")
	}

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, cfg)

	addr := fmt.Sprintf(":%s", cfg.Port)
	logrus.WithField("addr", addr).Info("server running")
	if err := r.Run(addr); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
