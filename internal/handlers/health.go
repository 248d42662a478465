package handlers

import (
	"boreal/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

func HealthCheck(c *fiber.Ctx) error {
	dbStatus := "connected"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "connected"
	if repositories.CacheService == nil || repositories.CacheService.Ping(c.Context()) != nil {
		redisStatus = "unreachable"
	}

	status := fiber.StatusOK
	if dbStatus != "connected" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  "ok",
		"version": "1.0.0",
		"services": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
