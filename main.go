// main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/famedhub/famed-api/config"
	"github.com/famedhub/famed-api/endpoint"
	"github.com/famedhub/famed-api/middleware"
	"github.com/famedhub/famed-api/model"
	"github.com/famedhub/famed-api/util"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Patient{},
		&model.MedicalRecord{},
		&model.Appointment{},
		&model.PendingItem{},
		&model.RecentUpdate{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}

	util.SetAuditLoggerDB(db)
	util.InitPatientNameCacheFromEnv()
	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP disabled: %v", err)
	}
	defer util.CloseGeoIP()

	// Redis backs the rate limiter; the limiter fails open without it.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.MaxMultipartMemory = 10 << 20
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())
	router.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		Limit:  cfg.RateLimit,
		Window: cfg.RateWindow,
	}))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	api := router.Group("/api")
	{
		api.GET("/patients", endpoint.ListPatients)
		api.POST("/patients", endpoint.CreatePatient)
		api.GET("/patients/:id", endpoint.GetPatientInfo)
		api.PUT("/patients/:id", endpoint.UpdatePatient)
		api.DELETE("/patients/:id", endpoint.DeletePatient)
		api.POST("/patients/:id/verify-sensitive-password", endpoint.VerifySensitivePassword)

		api.GET("/medical-records", endpoint.ListMedicalRecords)
		api.POST("/medical-records", endpoint.CreateMedicalRecord)
		api.GET("/medical-records/:id", endpoint.GetMedicalRecord)
		api.PUT("/medical-records/:id", endpoint.UpdateMedicalRecord)
		api.DELETE("/medical-records/:id", endpoint.DeleteMedicalRecord)

		api.GET("/appointments", endpoint.ListAppointments)
		api.POST("/appointments", endpoint.CreateAppointment)
		api.PUT("/appointments/:id", endpoint.UpdateAppointment)
		api.DELETE("/appointments/:id", endpoint.DeleteAppointment)

		api.GET("/pending-items", endpoint.ListPendingItems)
		api.POST("/pending-items", endpoint.CreatePendingItem)
		api.PUT("/pending-items/:id", endpoint.UpdatePendingItem)

		api.GET("/recent-updates", endpoint.ListRecentUpdates)

		api.POST("/upload", endpoint.UploadFile)
	}
	router.GET("/uploads/:filename", endpoint.ServeUpload)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
