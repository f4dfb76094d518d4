package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/mq"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.DeliveryZone{},
		&model.PaymentMethod{},
		&model.CartSession{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderStatusLog{},
		&model.CateringRequest{},
	); err != nil {
		panic(err)
	}

	// Repository（GORM実装）生成
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	zoneRepo := infraRepo.NewDeliveryZoneGormRepository(gormDB)
	paymentRepo := infraRepo.NewPaymentMethodGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	cateringRepo := infraRepo.NewCateringGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	cartStore := infraRepo.NewCartStoreGorm(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	recent := usecase.NewRecentOrders(128)

	// RabbitMQ（未設定ならNoop）
	var publisher usecase.OrderEventPublisher = usecase.NoopOrderEventPublisher{}
	if cfg.RabbitHost != "" {
		p, err := mq.Dial(mq.Config{
			Host:     cfg.RabbitHost,
			Port:     cfg.RabbitPort,
			User:     cfg.RabbitUser,
			Password: cfg.RabbitPass,
		})
		if err != nil {
			log.Printf("rabbitmq unavailable, order events disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	// bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()

	// JWT issuer
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 15 * time.Minute}

	// Usecase生成
	menuUC := usecase.NewMenuUsecase(menuRepo)
	cartUC := usecase.NewCartUsecase(cartStore, menuRepo, zoneRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cartStore, zoneRepo, paymentRepo, idGen, clock, publisher, recent)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo, recent)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, clock, publisher, recent)
	zoneUC := usecase.NewDeliveryZoneUsecase(zoneRepo)
	cateringUC := usecase.NewCateringUsecase(cateringRepo, clock)
	reportUC := usecase.NewReportUsecase(orderRepo, clock)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)

	// Server構築
	e := server.New()
	newKey := idGen.NewID

	handler.NewAuthHandler(authUC).RegisterRoutes(e)
	handler.NewMenuHandler(menuUC).RegisterRoutes(e)
	handler.NewCartHandler(cartUC).RegisterRoutes(e, newKey)
	handler.NewCheckoutHandler(checkoutUC, orderUC).RegisterRoutes(e, newKey)
	handler.NewDeliveryZoneHandler(zoneUC).RegisterRoutes(e, cfg)
	handler.NewCateringHandler(cateringUC).RegisterRoutes(e, cfg)
	handler.NewAdminOrderHandler(adminOrderUC).RegisterRoutes(e, cfg)
	handler.NewAdminMenuHandler(menuUC).RegisterRoutes(e, cfg)
	handler.NewAdminReportHandler(reportUC).RegisterRoutes(e, cfg)

	// Server起動
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		panic(err)
	}
}
