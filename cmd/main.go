package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/SangJLee1103/InstagramClone/config"
	"github.com/SangJLee1103/InstagramClone/internal/emulator"
	"github.com/SangJLee1103/InstagramClone/internal/errors"
	"github.com/SangJLee1103/InstagramClone/internal/reactor"
	"github.com/SangJLee1103/InstagramClone/internal/service"
	"github.com/SangJLee1103/InstagramClone/internal/session"
	"github.com/SangJLee1103/InstagramClone/internal/storage"
	"github.com/SangJLee1103/InstagramClone/internal/store"
	fsstore "github.com/SangJLee1103/InstagramClone/internal/store/firestore"
	"github.com/SangJLee1103/InstagramClone/internal/store/memory"
	"github.com/SangJLee1103/InstagramClone/internal/store/mysqldoc"
	"github.com/SangJLee1103/InstagramClone/internal/store/rest"
	"github.com/SangJLee1103/InstagramClone/internal/util"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置与日志
	config.Init()
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动", zap.String("backend", config.AppConfig.Backend))

	ctx := context.Background()

	docs, auth, provider, cleanup, err := buildBackend(ctx)
	if err != nil {
		util.Logger.Fatal("初始化后端失败", zap.Error(err))
	}
	defer cleanup()

	// 组装服务层
	sess := session.NewManager()
	uploader := service.NewImageUploader(provider)
	authService := service.NewAuthService(auth, docs, uploader, sess)
	userService := service.NewUserService(docs, sess)
	postService := service.NewPostService(docs, uploader, sess)
	notificationService := service.NewNotificationService(docs, sess)

	// 尝试恢复上次会话，失败不致命
	if user, err := authService.RestoreSession(ctx); err != nil {
		util.Logger.Info("无可恢复的会话", zap.String("reason", errors.UserMessage(err)))
	} else {
		util.Logger.Info("会话恢复成功", zap.String("username", user.Username))
	}

	// 组装首屏容器并演示一次拉取
	feed := reactor.NewFeedReactor(postService)
	defer feed.Close()
	search := reactor.NewSearchReactor(userService)
	defer search.Close()
	notifications := reactor.NewNotificationReactor(notificationService, userService, postService)
	defer notifications.Close()

	states, cancel := feed.Subscribe()
	defer cancel()

	feed.Dispatch(reactor.FeedFetchPosts{})
	feed.Dispatch(reactor.FeedCheckIfUserLikedPosts{})

	timeout := time.After(5 * time.Second)
	for {
		select {
		case state := <-states:
			util.Logger.Info("信息流状态更新", zap.Int("posts", len(state.Posts)))
		case <-timeout:
			util.Logger.Info("应用程序退出")
			return
		}
	}
}

// buildBackend 按配置选择文档库、认证与对象存储实现
func buildBackend(ctx context.Context) (store.DocumentStore, store.Authenticator, storage.Provider, func(), error) {
	noop := func() {}

	switch config.AppConfig.Backend {
	case "memory":
		provider, cleanup, err := buildStorage(ctx)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return memory.New(), memory.NewAuth(), provider, cleanup, nil

	case "firestore":
		cfg := config.AppConfig
		docs, err := fsstore.NewStore(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		auth, err := fsstore.NewAuth(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile, cfg.FirebaseAPIKey)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		provider, cleanup, err := buildStorage(ctx)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return docs, auth, provider, func() { cleanup(); docs.Close() }, nil

	case "mysql":
		cfg := config.AppConfig
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, nil, nil, err
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		docs := mysqldoc.NewStore(db)
		if err := docs.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, nil, nil, err
		}
		provider, cleanup, err := buildStorage(ctx)
		if err != nil {
			db.Close()
			return nil, nil, nil, nil, err
		}
		return docs, memory.NewAuth(), provider, func() { cleanup(); db.Close() }, nil

	case "emulator":
		// 本地开发后端：进程内起一个 emulator，客户端走HTTP
		server := emulator.NewServer(memory.New(), storage.NewMemoryStorage())
		go func() {
			if err := server.Router().Run(":8088"); err != nil {
				util.Logger.Error("emulator 退出", zap.Error(err))
			}
		}()
		client := rest.NewClient(config.AppConfig.EmulatorAddr)
		return client, client, client, noop, nil

	default:
		return nil, nil, nil, nil, fmt.Errorf("unknown backend %q", config.AppConfig.Backend)
	}
}

// buildStorage 按配置选择对象存储实现
func buildStorage(ctx context.Context) (storage.Provider, func(), error) {
	noop := func() {}
	cfg := config.AppConfig

	switch cfg.StorageProvider {
	case "memory":
		return storage.NewMemoryStorage(), noop, nil
	case "local":
		provider, err := storage.NewLocalStorage(cfg.LocalStoragePath)
		if err != nil {
			return nil, nil, err
		}
		return provider, noop, nil
	case "s3":
		provider, err := storage.NewS3Client(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			return nil, nil, err
		}
		return provider, noop, nil
	case "gcs":
		provider, err := storage.NewGCSClient(ctx, cfg.GCSBucketName, cfg.GCSCredentials)
		if err != nil {
			return nil, nil, err
		}
		return provider, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}
