package router

import (
	"github.com/oksasatya/securetask/config"
	"github.com/oksasatya/securetask/internal/application"
	"github.com/oksasatya/securetask/internal/container"
	repo "github.com/oksasatya/securetask/internal/domain/repository"
	"github.com/oksasatya/securetask/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/securetask/internal/infrastructure/postgres"
	"github.com/oksasatya/securetask/internal/infrastructure/search"
	handlers "github.com/oksasatya/securetask/internal/interface/http"
	"github.com/oksasatya/securetask/internal/router/modules"
	mailtpl "github.com/oksasatya/securetask/pkg/mailer/templates"
)

// Repositories is the record store selected by STORE_DRIVER.
type Repositories struct {
	Users repo.UserRepository
	Tasks repo.TaskRepository
	Audit repo.AuditRepository
}

func buildRepositories(cfg *config.Config) Repositories {
	if cfg.StoreDriver == config.StoreDriverPostgres && container.GetPGPool() != nil {
		pool := container.GetPGPool()
		return Repositories{
			Users: pginfra.NewUserRepository(pool),
			Tasks: pginfra.NewTaskRepository(pool),
			Audit: pginfra.NewAuditRepository(pool),
		}
	}
	store := container.GetMemoryStore()
	if store == nil {
		store = memory.NewStore()
		container.SetMemoryStore(store)
	}
	return Repositories{Users: store.Users(), Tasks: store.Tasks(), Audit: store.Audit()}
}

// buildUserIndex returns nil when Elasticsearch is not configured.
func buildUserIndex(cfg *config.Config) application.UserIndex {
	if container.GetES() == nil {
		return nil
	}
	return search.NewUserIndex(container.GetES(), cfg.ESUsersIndex)
}

func buildAuthService(cfg *config.Config, repos Repositories, index application.UserIndex) *application.AuthService {
	svc := application.NewAuthService(repos.Users, container.GetHasher(), container.GetJWT(), container.GetLogger(), cfg.AllowAdminSignup)
	if index != nil {
		svc.WithIndex(index)
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		svc.WithWelcomeMail(pub, mailtpl.Branding{
			AppName:     cfg.AppName,
			CompanyName: cfg.CompanyName,
			LoginURL:    cfg.LoginURL,
			SupportURL:  cfg.SupportURL,
		})
	}
	return svc
}

// InitModules builds services and handlers from the container and registers
// their modules. Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	repos := buildRepositories(cfg)
	index := buildUserIndex(cfg)

	authSvc := buildAuthService(cfg, repos, index)
	taskSvc := application.NewTaskService(repos.Tasks, logger)
	adminSvc := application.NewAdminService(repos.Users, repos.Tasks, index, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, repos.Audit, logger)))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, logger), jwt))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), jwt, logger))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
