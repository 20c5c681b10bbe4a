package srv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/chatpruner/pkg/log"
)

// Service is a resource a command holds for its lifetime.
type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices starts services in order. When one fails, the ones already
// started are shut down again.
func StartServices(ctx context.Context, services []Service) error {
	for i, service := range services {
		if err := service.Start(ctx); err != nil {
			_ = ShutdownServices(ctx, services[:i])
			return fmt.Errorf("%T failed to start: %w", service, err)
		}
	}
	return nil
}

// ShutdownServices stops services in reverse start order and reports every
// failure.
func ShutdownServices(ctx context.Context, services []Service) error {
	logger := log.FromCtx(ctx)
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
