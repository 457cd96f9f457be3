package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"golayout/config"
	"golayout/internal/pkg/cache"
	"golayout/internal/pkg/database"
	"golayout/internal/pkg/logger"
	"golayout/internal/pkg/metrics"
	"golayout/internal/pkg/token"

	// Camadas de layout para Injeção de Dependências
	"golayout/internal/api/router"
	"golayout/internal/api/shelf"
	"golayout/internal/api/zone"
	"golayout/internal/repository/shelfrepo"
	"golayout/internal/repository/zonerepo"
	"golayout/internal/service/shelfservice"
	"golayout/internal/service/zoneservice"
)

// @title golayout API
// @version 1.0
// @description Layout espacial do armazém: zonas, prateleiras e validação de posicionamento.
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço golayout...")
	if err := godotenv.Load(); err != nil {
		// As variáveis essenciais podem estar no ambiente do sistema (ex: Docker).
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal("Configuração inválida.", err)
	}
	log.Info("Configurações carregadas.", map[string]interface{}{
		"env":       cfg.Environment,
		"warehouse": cfg.Warehouse.Current(),
	})

	// 1. Conexão com Recursos de Infraestrutura

	pool := database.DefaultPoolConfig()
	pool.MaxOpenConns = cfg.DBMaxOpenConns
	pool.MaxIdleConns = cfg.DBMaxIdleConns
	pool.ConnMaxLifetime = cfg.DBConnLifetime

	db, err := database.NewPostgresDB(cfg.DatabaseURL, pool, cfg.DBTimeout)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)

	var cacheClient cache.Client
	if cfg.RedisAddr == "" {
		// REDIS_ADDR vazio: cache e rate limit locais ao processo.
		cacheClient = cache.NewMemoryClient()
		log.Warn("REDIS_ADDR vazio. Usando cache em memória.", nil)
	} else {
		redisClient := cache.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()
		pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.CacheTimeout)
		if err := redisClient.Ping(pingCtx); err != nil {
			// O layout volta ao DB e o rate limit é liberado enquanto o Redis estiver fora.
			log.Warn("Redis indisponível na inicialização.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
		} else {
			log.Info("Conexão Redis estabelecida.", nil)
		}
		cancelPing()
		cacheClient = redisClient
	}

	recorder := metrics.NewRecorder()
	txManager := database.NewTxManager(db, cfg.DBMaxTxRetries)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)

	// 2. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	zoneRepo := zonerepo.NewZoneRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTimeout, log)
	shelfRepo := shelfrepo.NewShelfRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	zoneSvc := zoneservice.NewService(zoneRepo, txManager, cfg.Warehouse, recorder, cfg.ZoneCodeMaxAttempts, log)
	shelfSvc := shelfservice.NewService(shelfRepo, zoneRepo, txManager, cfg.Warehouse, recorder, log)
	log.Debug("Serviços inicializados.", nil)

	zoneHandler := zone.NewHandler(zoneSvc, log)
	shelfHandler := shelf.NewHandler(shelfSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// 3. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(zoneHandler, shelfHandler, tokenSvc, cacheClient, recorder,
		router.RateLimit{MaxRequests: cfg.RateLimitMaxRequests, Period: cfg.RateLimitPeriod}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor golayout ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
