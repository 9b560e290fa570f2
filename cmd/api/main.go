package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/payroll-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/payroll-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-engine-go/internal/repository/postgresql"
	overtimeService "github.com/cmlabs-hris/payroll-engine-go/internal/service/overtime"
	payrollService "github.com/cmlabs-hris/payroll-engine-go/internal/service/payroll"
	salaryService "github.com/cmlabs-hris/payroll-engine-go/internal/service/salary"
	summaryService "github.com/cmlabs-hris/payroll-engine-go/internal/service/summary"
	"github.com/go-chi/jwtauth/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-engine"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	taxRepo := postgresql.NewTaxRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	holidays := calendar.NewHolidaySet(cfg.Payroll.PublicHolidays)
	tokenAuth := jwtauth.New("HS256", []byte(cfg.JWT.Secret), nil)

	overtimeSvc := overtimeService.NewOvertimeService(db, overtimeRepo, salaryRepo, cfg.Payroll.Overtime, holidays, logger)
	summarySvc := summaryService.NewSummaryService(db, attendanceRepo, summaryRepo, leaveRepo, overtimeRepo, payrollRepo, cfg.Payroll.LateDeductionRate)
	salarySvc := salaryService.NewSalaryService(db, salaryRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, salaryRepo, taxRepo, summarySvc, cfg.Payroll, logger)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)

	router := appHTTP.NewRouter(
		tokenAuth,
		cfg.App.Env,
		payrollHandler,
		overtimeHandler,
		salaryHandler,
		summaryHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
