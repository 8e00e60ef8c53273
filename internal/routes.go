package internal

import (
	"net/http"
	"stash/internal/controllers"
	"stash/internal/providers"
)

func InitRoutes(
	resetController *controllers.ResetController,
	sessionController *controllers.SessionController,
	budgetController *controllers.BudgetController,
	profileController *controllers.ProfileController,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/users/{userId}/monthly-reset/check", http.HandlerFunc(resetController.Check))
	routers.Post("/users/{userId}/monthly-reset", http.HandlerFunc(resetController.Manual))
	routers.Get("/users/{userId}/monthly-reset", http.HandlerFunc(resetController.Info))

	routers.Post("/users/{username}/session", http.HandlerFunc(sessionController.Start))
	routers.Get("/users/{username}/session", http.HandlerFunc(sessionController.Current))
	routers.Delete("/users/{username}/session", http.HandlerFunc(sessionController.End))
	routers.Get("/users/{username}/session/check", http.HandlerFunc(sessionController.Check))
	routers.Get("/users/{username}/session/remaining", http.HandlerFunc(sessionController.Remaining))

	routers.Get("/users/{username}/budget-caps", http.HandlerFunc(budgetController.GetAll))
	routers.Delete("/users/{username}/budget-caps", http.HandlerFunc(budgetController.ClearAll))
	routers.Get("/users/{username}/budget-caps/{category}", http.HandlerFunc(budgetController.Get))
	routers.Put("/users/{username}/budget-caps/{category}", http.HandlerFunc(budgetController.Set))
	routers.Delete("/users/{username}/budget-caps/{category}", http.HandlerFunc(budgetController.Remove))
	routers.Post("/budget-caps/sweep", http.HandlerFunc(budgetController.Sweep))
	routers.Get("/users/{username}/budget", http.HandlerFunc(budgetController.Overview))
	routers.Post("/users/{username}/budget/compute", http.HandlerFunc(budgetController.Compute))
	routers.Get("/budget-caps/defaults", http.HandlerFunc(budgetController.Defaults))

	routers.Get("/users/{username}/profile", http.HandlerFunc(profileController.Get))
	routers.Delete("/users/{username}/profile", http.HandlerFunc(profileController.Forget))
	return routers
}
