package router

import "net/http"

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	rateController RouteRegistrar,
	userController RouteRegistrar,
	accountController RouteRegistrar,
	transferController RouteRegistrar,
	splitController RouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	for _, registrar := range []RouteRegistrar{
		rateController,
		userController,
		accountController,
		transferController,
		splitController,
	} {
		if registrar != nil {
			registrar.RegisterRoutes(mux, authMiddleware)
		}
	}

	return mux
}
