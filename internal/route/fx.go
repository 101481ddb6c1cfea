package route

import (
	"github.com/neighborhq/memberdesk/internal/route/repository"
	"github.com/neighborhq/memberdesk/internal/route/service"
	"go.uber.org/fx"
)

var Module = fx.Module("route.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
