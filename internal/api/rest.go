package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/humidistat/humidistat/internal/configuration"
	"github.com/humidistat/humidistat/internal/ui"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// CreateRestService creates the read-only api. Nothing served here modifies the controller.
func CreateRestService(withMetrics bool) *echo.Echo {
	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest)
	registerSensorEndpoints(echoRest)
	if withMetrics {
		echoRest.GET("/metrics/", echoprometheus.NewHandler())
	}

	return echoRest
}

// Run serves the api until ctx is cancelled
func Run(ctx context.Context, config configuration.ApiConfig, withMetrics bool) error {
	rest := CreateRestService(withMetrics)
	addr := fmt.Sprintf("%s:%d", config.Host, config.Port)

	errs := make(chan error, 1)
	go func() {
		ui.Info("Starting api on %s", addr)
		errs <- rest.Start(addr)
	}()

	select {
	case err := <-errs:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		ui.Info("Stopping api...")
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer timeoutCancel()
		return rest.Shutdown(timeoutCtx)
	}
}
