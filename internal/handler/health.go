package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	amqpConn    *amqp.Connection
}

func NewHealthHandler(dbPool *pgxpool.Pool, redisClient *redis.Client, amqpConn *amqp.Connection) *HealthHandler {
	return &HealthHandler{dbPool: dbPool, redisClient: redisClient, amqpConn: amqpConn}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "vehicle-store-api", "status": "ok"})
}

// Readyz reports every dependency, not just the first broken one, so a
// single check shows the whole picture.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	deps := gin.H{}
	status := http.StatusOK

	if h.amqpConn.IsClosed() {
		deps["rabbitmq"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["rabbitmq"] = "up"
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		deps["redis"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["redis"] = "up"
	}

	if err := h.dbPool.Ping(ctx); err != nil {
		deps["postgres"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["postgres"] = "up"
		deps["postgres_conns"] = h.dbPool.Stat().TotalConns()
	}

	c.JSON(status, gin.H{"service": "vehicle-store-api", "deps": deps})
}
