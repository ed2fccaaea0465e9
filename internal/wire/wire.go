package wire

import (
	"Meridian/internal/api"
	"Meridian/internal/api/config"
	"Meridian/internal/api/handler"
	"Meridian/internal/job"
	croninit "Meridian/internal/pkg/cron"
	"Meridian/internal/pkg/kafka"
	mongodb "Meridian/internal/pkg/mongo"
	"Meridian/internal/repository"
	"Meridian/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *croninit.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userFollowRepo := repository.NewUserFollowRepo(db)
	profileViewRepo := repository.NewProfileViewRepo(db)
	userMetricsRepo := repository.NewUserMetricsRepository(db)
	notificationRepo := mongodb.NewNotificationRepo(mongoDB)

	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	userFollowService := service.NewUserFollowService(userFollowRepo, userRepo, notificationService)
	userService := service.NewUserService(userRepo, userFollowRepo, profileViewRepo)
	profileViewService := service.NewProfileViewService(profileViewRepo, userRepo)
	userMetricsService := service.NewUserMetricsService(userMetricsRepo, userFollowRepo)

	handlers := &api.HandlersGroup{
		UserHandler:        handler.NewUserHandler(userService),
		UserFollowHandler:  handler.NewUserFollowHandler(userFollowService),
		ProfileViewHandler: handler.NewProfileViewHandler(profileViewService),
		NoticeHandler:      handler.NewNoticeHandler(notificationService),
		UserMetricsHandler: handler.NewUserMetricsHandler(userMetricsService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, userMetricsService)
	if err != nil {
		return nil, err
	}

	userMetricsJob := job.NewUserMetricsJob(userRepo, userMetricsService, userFollowService)
	cronMgr := croninit.NewCronManager(userMetricsJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
