package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/annel0/shapebuilder/internal/builder"
	"github.com/annel0/shapebuilder/internal/compact"
	"github.com/annel0/shapebuilder/internal/logging"
	"github.com/annel0/shapebuilder/internal/middleware"
	"github.com/annel0/shapebuilder/internal/shape"
	"github.com/annel0/shapebuilder/internal/vec"
	"github.com/annel0/shapebuilder/internal/world/block"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// BlockReader читает блоки мира, в который строит Builder
type BlockReader interface {
	GetBlock(pos vec.Vec3) (block.BlockID, error)
}

// BlockReaderFunc адаптирует функцию к BlockReader
type BlockReaderFunc func(pos vec.Vec3) (block.BlockID, error)

func (f BlockReaderFunc) GetBlock(pos vec.Vec3) (block.BlockID, error) { return f(pos) }

// RestServer представляет REST API сервер
type RestServer struct {
	router *gin.Engine
	server *http.Server
	logger *logging.Logger
	stats  *ServerStats

	builder         *builder.Builder
	buildMu         sync.Mutex // Builder не допускает параллельных построений
	blocks          BlockReader
	defaultMaterial block.BlockID
	shellThreshold  float64
	maxSampleCoords int
	maxVolume       float64
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port            string // порт для запуска сервера, ":8088"
	Builder         *builder.Builder
	Blocks          BlockReader
	DefaultMaterial block.BlockID
	ShellThreshold  float64 // для эллипсоидов без shell_threshold
	MaxSampleCoords int     // 0 - без ограничения
	MaxVolume       int64   // предел shape.BoundingVolume, 0 - без ограничения

	Registerer prometheus.Registerer // nil - дефолтный регистр
	Gatherer   prometheus.Gatherer   // nil - дефолтный регистр
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.ShellThreshold == 0 {
		config.ShellThreshold = shape.DefaultShellThreshold
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	logger := logging.GetAPILogger()

	// === Observability middleware ===
	// otelgin первым: логгер берёт trace id из уже открытого span
	router.Use(otelgin.Middleware("shapebuilder"))
	router.Use(middleware.NewRequestLogger(logger).Handler())

	promMw := middleware.NewPrometheusMiddleware("rest_api", config.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, config.Gatherer)

	rs := &RestServer{
		router:          router,
		logger:          logger,
		stats:           NewServerStats(),
		builder:         config.Builder,
		blocks:          config.Blocks,
		defaultMaterial: config.DefaultMaterial,
		shellThreshold:  config.ShellThreshold,
		maxSampleCoords: config.MaxSampleCoords,
		maxVolume:       float64(config.MaxVolume),
		server: &http.Server{
			Addr:              config.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	rs.setupRoutes()
	return rs
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	api := rs.router.Group("/api")
	{
		api.GET("/server", rs.handleServerInfo)
		api.GET("/materials", rs.handleMaterials)
		api.GET("/shapes", rs.handleShapes)
		api.POST("/shapes/sample", rs.handleSample)
		api.POST("/shapes/build", rs.handleBuild)
		api.GET("/blocks/:x/:y/:z", rs.handleGetBlock)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Handler возвращает http.Handler сервера
func (rs *RestServer) Handler() http.Handler { return rs.router }

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, GenericResponse{Success: false, Message: message})
}

// SampledPass - один проход в ответе /api/shapes/sample
type SampledPass struct {
	Role        string     `json:"role"`
	Count       int        `json:"count"`
	Boxes       int        `json:"boxes"`
	Truncated   bool       `json:"truncated"`
	Coordinates []vec.Vec3 `json:"coordinates"`
}

// parseShape разбирает тело запроса в фигуру и политику
func (rs *RestServer) parseShape(c *gin.Context) (*ShapeRequest, shape.Spec, shape.Policy, bool) {
	var req ShapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return nil, nil, 0, false
	}
	spec, err := req.ToSpec(rs.shellThreshold)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return nil, nil, 0, false
	}
	if rs.maxVolume > 0 {
		if v := shape.BoundingVolume(spec); v > rs.maxVolume {
			fail(c, http.StatusBadRequest, fmt.Sprintf("Фигура слишком велика: объём %.0f больше %.0f", v, rs.maxVolume))
			return nil, nil, 0, false
		}
	}
	policy, err := shape.ParsePolicy(req.Policy)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return nil, nil, 0, false
	}
	return &req, spec, policy, true
}

// handleSample возвращает координаты фигуры, не меняя мир
func (rs *RestServer) handleSample(c *gin.Context) {
	_, spec, policy, ok := rs.parseShape(c)
	if !ok {
		return
	}

	passes := shape.Sample(spec, policy)
	out := make([]SampledPass, 0, len(passes))
	for _, p := range passes {
		sp := SampledPass{
			Role:        p.Role.String(),
			Count:       len(p.Coords),
			Boxes:       len(compact.Boxes(p.Coords)),
			Coordinates: p.Coords,
		}
		if rs.maxSampleCoords > 0 && len(sp.Coordinates) > rs.maxSampleCoords {
			sp.Coordinates = sp.Coordinates[:rs.maxSampleCoords]
			sp.Truncated = true
		}
		if sp.Coordinates == nil {
			sp.Coordinates = []vec.Vec3{}
		}
		out = append(out, sp)
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Координаты фигуры " + spec.Kind().String(),
		Data: map[string]interface{}{
			"shape":  spec.Kind().String(),
			"policy": policy.String(),
			"passes": out,
		},
	})
}

// handleBuild строит фигуру в мире
func (rs *RestServer) handleBuild(c *gin.Context) {
	req, spec, policy, ok := rs.parseShape(c)
	if !ok {
		return
	}
	if rs.builder == nil {
		fail(c, http.StatusServiceUnavailable, "Построение недоступно")
		return
	}

	material := rs.defaultMaterial
	if req.Material != "" {
		id, err := block.Lookup(req.Material)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		material = id
	}

	rs.buildMu.Lock()
	res, err := rs.builder.Build(c.Request.Context(), spec, policy, material)
	rs.buildMu.Unlock()
	if err != nil {
		rs.logger.Error("Ошибка построения %s: %v", spec.Kind(), err)
		fail(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Фигура построена",
		Data:    res,
	})
}

// handleGetBlock возвращает блок в координате
func (rs *RestServer) handleGetBlock(c *gin.Context) {
	var pos vec.Vec3
	for _, p := range []struct {
		name string
		dst  *int
	}{{"x", &pos.X}, {"y", &pos.Y}, {"z", &pos.Z}} {
		v, err := strconv.Atoi(c.Param(p.name))
		if err != nil {
			fail(c, http.StatusBadRequest, "Неверная координата "+p.name)
			return
		}
		*p.dst = v
	}
	if rs.blocks == nil {
		fail(c, http.StatusServiceUnavailable, "Мир недоступен")
		return
	}

	id, err := rs.blocks.GetBlock(pos)
	if err != nil {
		rs.logger.Error("Ошибка чтения блока %s: %v", pos, err)
		fail(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок " + pos.String(),
		Data: map[string]interface{}{
			"position": pos,
			"id":       id,
			"name":     id.String(),
		},
	})
}

// handleMaterials возвращает список именованных блоков
func (rs *RestServer) handleMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список материалов",
		Data:    block.Names(),
	})
}

// handleShapes возвращает список фигур
func (rs *RestServer) handleShapes(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Список фигур",
		Data:    shape.KindNames(),
	})
}

// handleServerInfo возвращает информацию о сервере
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    rs.stats.Snapshot(),
	})
}

func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// Start запускает REST сервер и блокируется до Stop
func (rs *RestServer) Start() error {
	rs.logger.Info("🌐 REST API слушает %s", rs.server.Addr)
	err := rs.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop завершает сервер, дожидаясь активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	return rs.server.Shutdown(ctx)
}
