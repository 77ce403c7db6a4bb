package main

import (
	"inventory/internal/config"
	"inventory/internal/contract"
	"inventory/internal/domain/model"
	"inventory/internal/handler"
	"inventory/internal/infra/db"
	infraRepo "inventory/internal/infra/repository"
	"inventory/internal/loader"
	"inventory/internal/mail"
	"inventory/internal/notify"
	"inventory/internal/server"
	"inventory/internal/usecase"
	"inventory/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// SMTP未設定のときの送信先。文面をログに出すだけ
type logOrderSender struct{}

func (logOrderSender) SendOrder(o usecase.Order) error {
	zap.L().Info("order composed (smtp disabled)",
		zap.String("to", o.To),
		zap.String("subject", mail.Subject(o)),
		zap.String("body", mail.Body(o)),
	)
	return nil
}

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.InitLogger(&logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.GoEnv,
		ServiceName: "inventory",
	}); err != nil {
		panic(err)
	}
	log := logger.GetLogger()
	defer log.Sync()

	//アドレス規約（起動時に一度だけ作る）
	ct, err := contract.New(cfg.ContractScheme, cfg.ContractAuthority)
	if err != nil {
		log.Fatal("invalid contract config", zap.Error(err))
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.StockAdjustment{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//変更通知
	notifier := notify.NewBusNotifier(ct)

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB, notifier)
	adjustRepo := infraRepo.NewStockAdjustmentGormRepository(gormDB)

	//発注メール
	var sender usecase.OrderSender = logOrderSender{}
	if cfg.SMTPHost != "" {
		sender = mail.NewOrderMailer(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	}

	//一覧の非同期ローダー
	productLoader := loader.NewProductLoader(productRepo)

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, adjustRepo, productLoader)
	stockUC := usecase.NewStockUsecase(productRepo, adjustRepo, sender)

	//Handler生成
	productH := handler.NewProductHandler(productUC, ct)
	stockH := handler.NewStockHandler(stockUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info("starting inventory api", zap.String("addr", addr), zap.String("collection", ct.CollectionURI()))
	if err := server.Start(addr, productH, stockH); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
