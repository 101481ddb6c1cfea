package person

import (
	"github.com/neighborhq/memberdesk/internal/person/repository"
	"github.com/neighborhq/memberdesk/internal/person/service"
	"go.uber.org/fx"
)

var Module = fx.Module("person.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
