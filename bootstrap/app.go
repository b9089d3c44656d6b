package bootstrap

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/echofinder/recommendation-engine/mongo"
)

type Application struct {
	Env    *Env
	Mongo  mongo.Client
	Logger zerolog.Logger
}

func App() Application {
	app := &Application{}
	app.Env = NewEnv()
	app.Mongo = NewMongoDatabase(app.Env)
	app.Logger = NewLogger(app.Env)
	return *app
}

// NewLogger 开发环境输出彩色控制台日志，其余环境输出JSON
func NewLogger(env *Env) zerolog.Logger {
	if env.AppEnv == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func (app *Application) CloseDBConnection() {
	CloseMongoDBConnection(app.Mongo)
}
