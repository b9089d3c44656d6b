package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/echofinder/recommendation-engine/api/route"
	"github.com/echofinder/recommendation-engine/bootstrap"
)

func main() {
	app := bootstrap.App()

	env := app.Env

	defer app.CloseDBConnection()

	timeout := time.Duration(env.ContextTimeout) * time.Second

	engine := gin.Default()

	route.Setup(env, timeout, app.Mongo, app.Logger, engine)

	if err := engine.Run(env.ServerAddress); err != nil {
		app.Logger.Fatal().Err(err).Msg("server stopped")
	}
}
