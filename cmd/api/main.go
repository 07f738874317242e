package main

import (
	"fmt"
	"net/http"

	"github.com/geoattend/attendance-backend-go/internal/config"
	appHTTP "github.com/geoattend/attendance-backend-go/internal/handler/http"
	"github.com/geoattend/attendance-backend-go/internal/pkg/database"
	"github.com/geoattend/attendance-backend-go/internal/pkg/jwt"
	"github.com/geoattend/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/geoattend/attendance-backend-go/internal/service/attendance"
	authService "github.com/geoattend/attendance-backend-go/internal/service/auth"
	employeeService "github.com/geoattend/attendance-backend-go/internal/service/employee"
	leaveService "github.com/geoattend/attendance-backend-go/internal/service/leave"
	locationService "github.com/geoattend/attendance-backend-go/internal/service/location"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveApplicationRepo := postgresql.NewLeaveApplicationRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, locationRepo, cfg.Attendance.HalfDayHours)
	leaveSvc := leaveService.NewLeaveService(db, leaveApplicationRepo, leaveBalanceRepo)
	locationSvc := locationService.NewLocationService(locationRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, locationRepo, leaveBalanceRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	locationHandler := appHTTP.NewLocationHandler(locationSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(cfg, JWTService, authHandler, attendanceHandler, leaveHandler, locationHandler, employeeHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Starting server on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
