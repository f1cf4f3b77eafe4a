package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fittrack/backoffice/internal/service"
)

// Services bundles everything SetupRoutes needs.
type Services struct {
	Auth         service.AuthService
	Alumno       service.AlumnoService
	Rutina       service.RutinaService
	Dieta        service.DietaService
	Catalog      service.CatalogService
	Notification service.NotificationService
	Lesion       service.LesionService
	Email        service.EmailService
	Dashboard    service.DashboardService
}

// SetupRoutes mounts the full HTTP surface on the router.
func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	alumnoHandler := NewAlumnoHandler(svc.Alumno)
	rutinaHandler := NewRutinaHandler(svc.Rutina, svc.Alumno)
	dietaHandler := NewDietaHandler(svc.Dieta, svc.Alumno)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	notificationHandler := NewNotificationHandler(svc.Notification)
	lesionHandler := NewLesionHandler(svc.Lesion)
	emailHandler := NewEmailHandler(svc.Email)
	dashboardHandler := NewDashboardHandler(svc.Dashboard)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Catalog reads are public; creation requires a session.
	apiV1.GET("/ejercicios-base", catalogHandler.ListEjerciciosBase)
	apiV1.GET("/ejercicios-base/search/:q", catalogHandler.SearchEjerciciosBase)
	apiV1.GET("/alimentos", catalogHandler.ListAlimentos)
	apiV1.GET("/alimentos/search/:q", catalogHandler.SearchAlimentos)

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/ejercicios-base", catalogHandler.CreateEjercicioBase)
		protected.POST("/alimentos", catalogHandler.CreateAlimento)

		protected.GET("/dashboard", dashboardHandler.Overview)

		alumnos := protected.Group("/alumnos")
		{
			alumnos.GET("", alumnoHandler.List)
			alumnos.POST("", alumnoHandler.Create)
			alumnos.GET("/:id", alumnoHandler.Get)
			alumnos.PATCH("/:id", alumnoHandler.Update)
			alumnos.DELETE("/:id", alumnoHandler.Delete)
			alumnos.GET("/:id/dashboard", alumnoHandler.Dashboard)

			alumnos.GET("/:id/pesos", alumnoHandler.ListPesos)
			alumnos.POST("/:id/pesos", alumnoHandler.AddPeso)

			alumnos.GET("/:id/personal-records", alumnoHandler.ListRecords)
			alumnos.POST("/:id/personal-records", alumnoHandler.AddRecord)
			alumnos.GET("/:id/pr-chart", alumnoHandler.RecordChart)

			alumnos.GET("/:id/rutinas", rutinaHandler.ListByAlumno)
			alumnos.POST("/:id/rutinas", rutinaHandler.Create)

			alumnos.GET("/:id/dietas", dietaHandler.ListByAlumno)
			alumnos.POST("/:id/dietas", dietaHandler.Create)
		}

		protected.PATCH("/pesos/:id", alumnoHandler.UpdatePeso)
		protected.DELETE("/pesos/:id", alumnoHandler.DeletePeso)
		protected.DELETE("/personal-records/:id", alumnoHandler.DeleteRecord)

		rutinas := protected.Group("/rutinas")
		{
			rutinas.GET("/:id", rutinaHandler.Get)
			rutinas.PATCH("/:id", rutinaHandler.Update)
			rutinas.DELETE("/:id", rutinaHandler.Delete)
			rutinas.POST("/:id/ejercicios", rutinaHandler.AddEjercicio)
			rutinas.POST("/:id/copy/:alumnoId", rutinaHandler.CopyToAlumno)
			rutinas.POST("/:id/copy-day", rutinaHandler.CopyDay)
			rutinas.POST("/:id/save-as-template", rutinaHandler.SaveAsTemplate)
			rutinas.GET("/:id/pdf", rutinaHandler.ExportPDF)
			rutinas.GET("/:id/excel", rutinaHandler.ExportExcel)
		}
		protected.PATCH("/ejercicios/:id", rutinaHandler.UpdateEjercicio)
		protected.DELETE("/ejercicios/:id", rutinaHandler.DeleteEjercicio)

		plantillas := protected.Group("/plantillas")
		{
			plantillas.GET("", rutinaHandler.ListPlantillas)
			plantillas.POST("", rutinaHandler.CreatePlantilla)
			plantillas.POST("/:id/create-rutina/:alumnoId", rutinaHandler.CreateFromTemplate)
		}

		dietas := protected.Group("/dietas")
		{
			dietas.GET("/:id", dietaHandler.Get)
			dietas.PATCH("/:id", dietaHandler.Update)
			dietas.DELETE("/:id", dietaHandler.Delete)
			dietas.POST("/:id/comidas", dietaHandler.AddComida)
			dietas.POST("/:id/copy-day", dietaHandler.CopyDay)
			dietas.POST("/:id/save-as-template", dietaHandler.SaveAsTemplate)
			dietas.GET("/:id/pdf", dietaHandler.ExportPDF)
			dietas.GET("/:id/excel", dietaHandler.ExportExcel)
		}
		protected.PATCH("/comidas/:id", dietaHandler.UpdateComida)
		protected.DELETE("/comidas/:id", dietaHandler.DeleteComida)
		protected.POST("/comidas/:id/alimentos", dietaHandler.AddComidaAlimento)
		protected.DELETE("/comida-alimentos/:id", dietaHandler.DeleteComidaAlimento)

		dietasPlantillas := protected.Group("/dietas-plantillas")
		{
			dietasPlantillas.GET("", dietaHandler.ListPlantillas)
			dietasPlantillas.POST("/:id/create-dieta/:alumnoId", dietaHandler.CreateFromTemplate)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		lesiones := protected.Group("/lesiones")
		{
			lesiones.GET("/alumno/:alumnoId", lesionHandler.ListByAlumno)
			lesiones.POST("/alumno/:alumnoId", lesionHandler.Create)
			lesiones.PATCH("/:id", lesionHandler.Update)
			lesiones.DELETE("/:id", lesionHandler.Delete)
		}

		emails := protected.Group("/emails")
		{
			emails.POST("/quota-increase", emailHandler.SendQuotaIncrease)
			emails.POST("/absence-notice", emailHandler.SendAbsenceNotice)
		}
	}
}
