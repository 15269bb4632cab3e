package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/localscoop/escoop-backend/internal/handler"
	"github.com/localscoop/escoop-backend/internal/middleware"
	"github.com/localscoop/escoop-backend/pkg/jwt"
)

// Handlers bundles every HTTP handler the router wires up
type Handlers struct {
	Auth       *handler.AuthHandler
	Event      *handler.EventHandler
	Restaurant *handler.RestaurantHandler
	ArtsGroup  *handler.ArtsGroupHandler
	Banner     *handler.BannerHandler
	Newsletter *handler.NewsletterHandler
	Media      *handler.MediaHandler
	Browse     *handler.BrowseHandler
}

// Setup configures the public directory routes
func Setup(router *gin.Engine, h *Handlers) {
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	events := api.Group("/events")
	events.GET("", h.Event.ListEvents)
	events.GET("/:slug", h.Event.GetEvent)

	restaurants := api.Group("/restaurants")
	restaurants.GET("", h.Restaurant.ListRestaurants)
	restaurants.GET("/search", h.Restaurant.SearchRestaurants)
	restaurants.GET("/:slug", h.Restaurant.GetRestaurant)

	api.GET("/arts-groups/:slug", h.ArtsGroup.GetArtsGroup)
	api.GET("/banners", h.Banner.ListActiveBanners)

	// Session-scoped browsing: filters, debounced search, and page
	// accumulation are held server side per session
	browse := api.Group("/browse")
	browse.POST("", h.Browse.OpenBrowseSession)
	browse.DELETE("/:sid", h.Browse.CloseBrowseSession)

	browseEvents := browse.Group("/:sid/events")
	browseEvents.PUT("/filters", h.Browse.SetEventFilters)
	browseEvents.POST("/search", h.Browse.SearchEvents)
	browseEvents.POST("/load", h.Browse.LoadEvents)
	browseEvents.POST("/clear", h.Browse.ClearEventFilters)

	browseRestaurants := browse.Group("/:sid/restaurants")
	browseRestaurants.PUT("/filters", h.Browse.SetRestaurantFilters)
	browseRestaurants.POST("/search", h.Browse.SearchRestaurantsBrowse)
	browseRestaurants.POST("/load", h.Browse.LoadRestaurants)
	browseRestaurants.POST("/clear", h.Browse.ClearRestaurantFilters)
}

// SetupAdmin configures the editor-facing CMS routes. Everything under
// /admin requires a valid token at editor level; banner management and
// the final campaign send additionally require admin level.
func SetupAdmin(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager) {
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(jwtManager), middleware.RequireEditor())

	adminOnly := middleware.RequireAdmin()

	// Content CRUD
	events := admin.Group("/events")
	events.POST("", h.Event.CreateEvent)
	events.PUT("/:id", h.Event.UpdateEvent)
	events.DELETE("/:id", h.Event.DeleteEvent)

	restaurants := admin.Group("/restaurants")
	restaurants.POST("", h.Restaurant.CreateRestaurant)
	restaurants.PUT("/:id", h.Restaurant.UpdateRestaurant)
	restaurants.DELETE("/:id", h.Restaurant.DeleteRestaurant)

	groups := admin.Group("/arts-groups")
	groups.GET("", h.ArtsGroup.ListArtsGroups)
	groups.POST("", h.ArtsGroup.CreateArtsGroup)
	groups.PATCH("/:id", h.ArtsGroup.UpdateArtsGroup)
	groups.POST("/:id/publish", h.ArtsGroup.PublishArtsGroup)
	groups.DELETE("/:id", h.ArtsGroup.DeleteArtsGroup)

	banners := admin.Group("/banners", adminOnly)
	banners.GET("", h.Banner.ListAllBanners)
	banners.POST("", h.Banner.CreateBanner)
	banners.GET("/:id", h.Banner.GetBanner)
	banners.PATCH("/:id", h.Banner.UpdateBanner)
	banners.DELETE("/:id", h.Banner.DeleteBanner)

	// Media uploads
	admin.POST("/media/presign", h.Media.PresignUpload)
	admin.DELETE("/media", h.Media.DeleteMedia)

	// Newsletter builder
	nl := admin.Group("/newsletters/:id")
	nl.POST("/open", h.Newsletter.OpenBuilder)
	nl.GET("", h.Newsletter.GetComposition)
	nl.DELETE("/session", h.Newsletter.CloseBuilder)

	nl.POST("/entries/load-more", h.Newsletter.LoadMoreEntries)
	nl.POST("/entries/:entryID/toggle", h.Newsletter.ToggleEntry)

	nl.POST("/restaurants", h.Newsletter.AddRestaurant)
	nl.DELETE("/restaurants/:restaurantID", h.Newsletter.RemoveRestaurant)
	nl.POST("/restaurants/:restaurantID/move", h.Newsletter.MoveRestaurant)
	nl.POST("/restaurants/:restaurantID/pick-of-month", h.Newsletter.SetPickOfMonth)

	nl.POST("/featured", h.Newsletter.AddFeaturedEvent)
	nl.DELETE("/featured/:eventID", h.Newsletter.RemoveFeaturedEvent)
	nl.POST("/featured/:eventID/toggle", h.Newsletter.ToggleFeatured)

	nl.PUT("/settings", h.Newsletter.UpdateSettings)
	nl.GET("/preview", h.Newsletter.Preview)
	nl.POST("/save", h.Newsletter.SaveNewsletter)

	// Campaign lifecycle
	nl.POST("/campaign", h.Newsletter.CreateCampaign)
	nl.PUT("/campaign", h.Newsletter.UpdateCampaign)
	nl.POST("/campaign/test", h.Newsletter.SendTestCampaign)
	nl.POST("/campaign/send", adminOnly, h.Newsletter.SendFinalCampaign)

	campaign := admin.Group("/campaign")
	campaign.GET("/lists", h.Newsletter.ListCampaignLists)
	campaign.GET("/segments", h.Newsletter.ListCampaignSegments)
}
