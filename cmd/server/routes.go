package main

import (
	"github.com/gin-gonic/gin"
	"tutorhub.backend/internal/domain/entities"
	"tutorhub.backend/internal/interfaces/http/handlers"
	"tutorhub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	userHandler         *handlers.UserHandler
	tuitionHandler      *handlers.TuitionHandler
	applicationHandler  *handlers.ApplicationHandler
	paymentHandler      *handlers.PaymentHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
	principalMiddleware gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Public
	r.POST("/jwt", d.authHandler.IssueToken)
	r.POST("/users", d.userHandler.CreateUser)
	r.GET("/tuitions", d.tuitionHandler.ListPublic)
	r.GET("/tuitions/:id", d.tuitionHandler.GetTuition)

	authed := r.Group("/", d.authMiddleware, d.principalMiddleware)
	admin := authed.Group("/", middleware.RequireAdmin())
	self := middleware.RequireSelf("email")
	idempotent := middleware.IdempotencyMiddleware()

	// Users
	authed.GET("/users/:email", d.userHandler.GetUser)
	authed.PATCH("/users/update/:email", self, d.userHandler.UpdateProfile)
	admin.GET("/users", d.userHandler.ListUsers)
	admin.PATCH("/users/role/:id", d.userHandler.UpdateRole)
	admin.DELETE("/users/:id", d.userHandler.DeleteUser)

	// Tuitions
	authed.POST("/tuitions", d.tuitionHandler.CreateTuition)
	authed.GET("/my-tuitions/:email", self, d.tuitionHandler.ListMine)
	authed.PATCH("/tuitions/update/:id", d.tuitionHandler.UpdateTuition)
	authed.DELETE("/tuitions/:id", d.tuitionHandler.DeleteTuition)
	admin.GET("/tuitions/admin/all", d.tuitionHandler.ListAll)
	admin.PATCH("/tuitions/status/:id", d.tuitionHandler.UpdateStatus)

	// Applications
	authed.POST("/applications", middleware.RequireRole(entities.UserRoleTutor), d.applicationHandler.Apply)
	authed.GET("/applications/received/:email", self, d.applicationHandler.ListReceived)
	authed.GET("/applications/tutor/:email", self, d.applicationHandler.ListByTutor)
	authed.GET("/applications/:id", d.applicationHandler.GetApplication)
	authed.PATCH("/applications/reject/:id", d.applicationHandler.Reject)
	authed.DELETE("/applications/:id", d.applicationHandler.DeleteApplication)

	// Payments
	authed.POST("/create-payment-intent", idempotent, d.paymentHandler.CreatePaymentIntent)
	authed.POST("/payments", idempotent, d.paymentHandler.RecordPayment)
	authed.GET("/payments/my-history/:email", self, d.paymentHandler.ListMyHistory)
	authed.GET("/payments/tutor-history/:email", self, d.paymentHandler.ListTutorHistory)

	// Admin
	admin.GET("/admin-stats", d.adminHandler.GetStats)
}
