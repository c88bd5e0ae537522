package router

import (
	"gestorcn/internal/config"
	"gestorcn/internal/handler"
	"gestorcn/internal/middleware"
	"gestorcn/internal/repository"
	"gestorcn/internal/service"
	"gestorcn/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	boletaRepo := repository.NewBoletaRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo, boletaRepo)
	productoSvc := service.NewProductoService(productoRepo, boletaRepo, rdb)
	boletaSvc := service.NewBoletaService(boletaRepo, dispatcher, cfg.PDFStoragePath, cfg.NombreNegocio)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	boletasH := handler.NewBoletasHandler(boletaSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	r.POST("/register", authH.Register)
	r.POST("/refresh", authH.Refresh)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	api := r.Group("/", jwtMW)
	{
		clientes := api.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		productos := api.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
		}

		// Catalog projection for the sales screen (active products only)
		api.GET("/articulos", productosH.Articulos)

		boletas := api.Group("/boletas")
		{
			boletas.POST("", boletasH.Crear)
			boletas.GET("", boletasH.Listar)
			boletas.GET("/reporte", boletasH.Reporte)
			boletas.PATCH("/completada/multiple", boletasH.CompletadaMultiple)
			boletas.GET("/:numero", boletasH.ObtenerPorNumero)
			boletas.GET("/:numero/pdf", boletasH.DescargarPDF)
			boletas.PUT("/:numero", boletasH.Actualizar)
			boletas.DELETE("/:numero", boletasH.Eliminar)
			boletas.PATCH("/:numero/completada", boletasH.Completada)
		}

		usuarios := api.Group("/usuarios", middleware.RequireAdmin())
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Eliminar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
