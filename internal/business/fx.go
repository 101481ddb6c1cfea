package business

import (
	"github.com/neighborhq/memberdesk/internal/business/repository"
	"github.com/neighborhq/memberdesk/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
