package ratequote

import (
	"github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/cache"
	"github.com/joshuahuffman02/Keepr-sub014/internal/ratequote/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratequote",
	fx.Provide(cache.New),
	fx.Provide(service.New),
)
