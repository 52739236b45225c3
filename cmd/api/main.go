package main

import (
	"fmt"
	"net/http"

	"github.com/fasihgds-afk/hik-attendance-system/internal/config"
	"github.com/fasihgds-afk/hik-attendance-system/internal/domain/shift"
	appHTTP "github.com/fasihgds-afk/hik-attendance-system/internal/handler/http"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/clock"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/database"
	"github.com/fasihgds-afk/hik-attendance-system/internal/pkg/jwt"
	"github.com/fasihgds-afk/hik-attendance-system/internal/repository/postgresql"
	attendanceService "github.com/fasihgds-afk/hik-attendance-system/internal/service/attendance"
	leaveService "github.com/fasihgds-afk/hik-attendance-system/internal/service/leave"
	payrollService "github.com/fasihgds-afk/hik-attendance-system/internal/service/payroll"
	shiftService "github.com/fasihgds-afk/hik-attendance-system/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	rulesRepo := postgresql.NewRulesRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)
	companyClock := clock.New(cfg.Company.Location)
	saturdayOverride := shift.SaturdayOverride{
		ShiftCode:      cfg.Company.SaturdayOverrideShift,
		SubstituteCode: cfg.Company.SaturdaySubstituteShift,
	}

	attendanceSvc := attendanceService.NewAttendanceService(
		companyClock,
		punchRepo,
		attendanceRepo,
		employeeRepo,
		shiftRepo,
		saturdayOverride,
	)
	payrollSvc := payrollService.NewPayrollService(rulesRepo, attendanceRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(
		companyClock,
		cfg.Leave.PerQuarter,
		leaveRepo,
		attendanceRepo,
		employeeRepo,
		attendanceSvc,
	)
	shiftSvc := shiftService.NewShiftService(shiftRepo, saturdayOverride)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		payrollHandler,
		leaveHandler,
		shiftHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
