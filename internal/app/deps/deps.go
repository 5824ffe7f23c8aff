package deps

import (
	"context"
	"sync"
	"time"
	"userable/internal/config"
	devents "userable/internal/core/domain/events"
	"userable/internal/core/domain/group"
	dl "userable/internal/core/domain/logging"
	drl "userable/internal/core/domain/rate_limiter"
	"userable/internal/core/domain/token"
	duow "userable/internal/core/domain/unit_of_work"
	"userable/internal/core/domain/user"
	dbgroup "userable/internal/db/group"
	dbtoken "userable/internal/db/token"
	uow "userable/internal/db/unit_of_work"
	dbuser "userable/internal/db/user"
	credentialstore "userable/internal/implementations/credential_store"
	"userable/internal/implementations/email"
	"userable/internal/implementations/logging"
	randomstringgenerator "userable/internal/implementations/random_string_generator"
	ratelimiter "userable/internal/implementations/rate_limiter"
	"userable/internal/rabbitmq"
	userevents "userable/internal/rabbitmq/publishers/user_events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork        duow.UnitOfWork
	UserRepository    user.UserRepository
	SessionRepository user.SessionRepository
	TokenRepository   token.Repository
	GroupRepository   group.Repository

	RateLimiter drl.RateLimiter

	EmailSender *email.EmailSender

	TokenLedger             *token.Ledger
	ActivationCodeSender    token.ActivationCodeSender
	PasswordResetCodeSender token.PasswordResetCodeSender

	CredentialStore       user.CredentialStore
	SaltGenerator         user.SaltGenerator
	SessionTokenGenerator user.SessionTokenGenerator

	EventPublisher devents.Publisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.TokenRepository = dbtoken.NewPgxRepository(deps.DB)
	deps.GroupRepository = dbgroup.NewPgxRepository(deps.DB)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.EmailSender,
		deps.Config.AccountActivationTemplate,
		deps.Config.AccountActivationBaseURL,
		deps.Config.PasswordResetTemplate,
		deps.Config.PasswordResetBaseURL,
	)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	generator := randomstringgenerator.NewGenerator()
	deps.SaltGenerator = generator
	deps.SessionTokenGenerator = generator
	deps.CredentialStore = credentialstore.NewBcrypt(deps.SaltGenerator, deps.Config.BcryptCost)

	deps.TokenLedger = token.NewLedger(
		deps.TokenRepository,
		generator,
		deps.Now,
		time.Duration(deps.Config.TokenValidDurationHours)*time.Hour,
	)
	deps.ActivationCodeSender = deps.EmailSender
	deps.PasswordResetCodeSender = deps.EmailSender

	closeEventPublisher := deps.initRabbitmqEventPublisher()

	return deps, func() {
		closeFuncs := []func(){
			closeEventPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKeyID,
				deps.Config.AwsSecretAccessKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqEventPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqEventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.EventPublisher = userevents.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqEventsExchange,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down event publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Event publisher shut down.")
	}
}
