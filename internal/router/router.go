package router

import (
	"time"

	"github.com/ferrosero91/parking-solupark/internal/cache"
	"github.com/ferrosero91/parking-solupark/internal/config"
	"github.com/ferrosero91/parking-solupark/internal/handler"
	"github.com/ferrosero91/parking-solupark/internal/infra"
	"github.com/ferrosero91/parking-solupark/internal/middleware"
	"github.com/ferrosero91/parking-solupark/internal/repository"
	"github.com/ferrosero91/parking-solupark/internal/service"
	"github.com/ferrosero91/parking-solupark/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Roles del sistema.
const (
	RolCajero        = "cajero"
	RolOperador      = "operador"
	RolAdministrador = "administrador"
)

// New wires repositories, services and handlers into the gin engine.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositorios
	usuarioRepo := repository.NewUsuarioRepository(db)
	parqueaderoRepo := repository.NewParqueaderoRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	medioPagoRepo := repository.NewMedioPagoRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	mensualidadRepo := repository.NewMensualidadRepository(db)

	c := cache.New(rdb)

	// Servicios
	authSvc := service.NewAuthService(
		usuarioRepo,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpirationHours)*time.Hour,
		time.Duration(cfg.JWTRefreshHours)*time.Hour,
		nil,
	)
	parqueaderoSvc := service.NewParqueaderoService(parqueaderoRepo, c, nil)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	medioPagoSvc := service.NewMedioPagoService(medioPagoRepo)
	ticketSvc := service.NewTicketService(ticketRepo, categoriaRepo, medioPagoRepo, c, dispatcher, nil)
	cajaSvc := service.NewCajaService(cajaRepo, ticketRepo, mensualidadRepo, medioPagoRepo, cfg.Location(), nil)
	mensualidadSvc := service.NewMensualidadService(mensualidadRepo, clienteRepo, categoriaRepo, medioPagoRepo, c, dispatcher, nil)
	reporteSvc := service.NewReporteService(ticketRepo, mensualidadRepo, c)

	// Handlers
	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	ticketH := handler.NewTicketHandler(ticketSvc, infra.NewReciboPDF())
	cajaH := handler.NewCajaHandler(cajaSvc)
	mensualidadH := handler.NewMensualidadHandler(mensualidadSvc)
	categoriaH := handler.NewCategoriaHandler(categoriaSvc)
	clienteH := handler.NewClienteHandler(clienteSvc)
	medioPagoH := handler.NewMedioPagoHandler(medioPagoSvc)
	reporteH := handler.NewReporteHandler(reporteSvc, nil)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(),
	)

	r.GET("/health", healthH.Check)
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)

	v1 := r.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimiter.Middleware(), authH.Login)
			auth.POST("/refresh", authH.Refresh)
			auth.POST("/usuarios",
				middleware.JWTAuth(authSvc),
				middleware.RequireRole(RolAdministrador),
				authH.CrearUsuario,
			)
		}

		// Todo lo demás exige token y parqueadero con suscripción vigente.
		tenant := v1.Group("")
		tenant.Use(middleware.JWTAuth(authSvc), middleware.TenantResolver(parqueaderoSvc))

		operacion := tenant.Group("")
		operacion.Use(middleware.RequireRole(RolCajero, RolOperador, RolAdministrador))
		{
			operacion.POST("/tickets", ticketH.Ingresar)
			operacion.GET("/tickets/abiertos", ticketH.ListarAbiertos)
			operacion.POST("/tickets/cotizar", ticketH.Cotizar)
			operacion.POST("/tickets/liquidar", ticketH.Liquidar)
			operacion.GET("/tickets/recibo/:id", ticketH.Recibo)

			operacion.GET("/caja", cajaH.Obtener)
			operacion.PUT("/caja/dinero-inicial", cajaH.DineroInicial)
			operacion.POST("/caja/cuadre", cajaH.Cuadrar)

			operacion.GET("/mensualidades", mensualidadH.Listar)
			operacion.GET("/mensualidades/:id", mensualidadH.Obtener)
			operacion.POST("/mensualidades", mensualidadH.Crear)
			operacion.POST("/mensualidades/pagar/:id", mensualidadH.Pagar)
			operacion.POST("/mensualidades/barrer", mensualidadH.Barrer)

			operacion.GET("/categorias", categoriaH.Listar)
			operacion.GET("/clientes", clienteH.Listar)
			operacion.GET("/clientes/:id", clienteH.Obtener)
			operacion.POST("/clientes", clienteH.Crear)
			operacion.GET("/medios-pago", medioPagoH.Listar)
		}

		admin := tenant.Group("")
		admin.Use(middleware.RequireRole(RolOperador, RolAdministrador))
		{
			admin.POST("/mensualidades/cancelar/:id", mensualidadH.Cancelar)

			admin.POST("/categorias", categoriaH.Crear)
			admin.PUT("/categorias/:id", categoriaH.Actualizar)
			admin.DELETE("/categorias/:id", categoriaH.Eliminar)

			admin.PUT("/clientes/:id", clienteH.Actualizar)
			admin.DELETE("/clientes/:id", clienteH.Desactivar)

			admin.POST("/medios-pago", medioPagoH.Crear)
			admin.PUT("/medios-pago/:id", medioPagoH.Actualizar)

			admin.GET("/reportes/ingresos", reporteH.Ingresos)
			admin.GET("/reportes/medios-pago", reporteH.MediosPago)
		}
	}

	return r
}
