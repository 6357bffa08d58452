package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/opsboard-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

// Handlers groups every HTTP handler. The entity handlers are nil when the data source is a
// read-only remote API; their routes are then not mounted.
type Handlers struct {
	Dashboard  DashboardHandler
	Report     ReportHandler
	Employee   EmployeeHandler
	Contract   ContractHandler
	Department DepartmentHandler
	Client     ClientHandler
	Project    ProjectHandler
	Task       TaskHandler
	Ticket     TicketHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/dashboard", h.Dashboard.GetDashboard)
			r.Get("/overview", h.Dashboard.GetOverview)
			r.Get("/employees/{id}/rates", h.Dashboard.GetEmployeeRates)
			r.Get("/distribution/{dimension}", h.Dashboard.GetDistribution)
			r.Get("/trend", h.Dashboard.GetTrend)
			r.Get("/radar", h.Dashboard.GetRadar)
			r.Get("/top-performers", h.Dashboard.GetTopPerformers)
			r.Post("/refresh", h.Dashboard.Refresh)

			r.Get("/export", h.Report.ExportDashboard)
			r.Get("/employee-performance", h.Report.GetEmployeePerformanceReport)
		})

		if h.Employee != nil {
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Post("/wizard/steps/{step}", h.Employee.ValidateStep)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
					r.Get("/contracts", h.Employee.ListContracts)
				})
			})
		}

		if h.Contract != nil {
			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", h.Contract.ListContracts)
				r.Post("/", h.Contract.CreateContract)
				r.Get("/type/{contractType}", h.Contract.ListByType)
				r.Get("/employee/{employeeId}", h.Contract.ListByEmployee)
				r.Get("/employee/{employeeId}/active", h.Contract.GetActiveContract)
				r.Get("/{id}", h.Contract.GetContract)
				r.Put("/{id}", h.Contract.UpdateContract)
				r.Delete("/{id}", h.Contract.DeleteContract)
			})
		}

		if h.Department != nil {
			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.ListDepartments)
				r.Post("/", h.Department.CreateDepartment)
				r.Get("/with-managers", h.Department.ListWithManagers)
				r.Get("/{id}", h.Department.GetDepartment)
				r.Put("/{id}", h.Department.UpdateDepartment)
				r.Delete("/{id}", h.Department.DeleteDepartment)
			})
		}

		if h.Client != nil {
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.Client.ListClients)
				r.Post("/", h.Client.CreateClient)
				r.Get("/search", h.Client.SearchClients)
				r.Post("/wizard/steps/{step}", h.Client.ValidateStep)
				r.Get("/{id}", h.Client.GetClient)
				r.Put("/{id}", h.Client.UpdateClient)
				r.Delete("/{id}", h.Client.DeleteClient)
			})
		}

		if h.Project != nil {
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.ListProjects)
				r.Post("/", h.Project.CreateProject)
				r.Get("/overdue", h.Project.ListOverdue)
				r.Post("/wizard/steps/{step}", h.Project.ValidateStep)
				r.Get("/{id}", h.Project.GetProject)
				r.Put("/{id}", h.Project.UpdateProject)
				r.Delete("/{id}", h.Project.DeleteProject)
			})
		}

		if h.Task != nil {
			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.ListTasks)
				r.Post("/", h.Task.CreateTask)
				r.Get("/overdue", h.Task.ListOverdue)
				r.Get("/{id}", h.Task.GetTask)
				r.Put("/{id}", h.Task.UpdateTask)
				r.Post("/{id}/complete", h.Task.CompleteTask)
				r.Delete("/{id}", h.Task.DeleteTask)
			})
		}

		if h.Ticket != nil {
			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", h.Ticket.ListTickets)
				r.Post("/", h.Ticket.CreateTicket)
				r.Get("/{id}", h.Ticket.GetTicket)
				r.Put("/{id}", h.Ticket.UpdateTicket)
				r.Post("/{id}/resolve", h.Ticket.ResolveTicket)
				r.Delete("/{id}", h.Ticket.DeleteTicket)
			})
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
