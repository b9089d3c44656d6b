package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

// Env 服务配置，从.env读取
type Env struct {
	AppEnv         string `mapstructure:"APP_ENV"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout int    `mapstructure:"CONTEXT_TIMEOUT"`

	DBUri  string `mapstructure:"DB_URI"`
	DBName string `mapstructure:"DB_NAME"`

	EncoderBaseURL string  `mapstructure:"ENCODER_BASE_URL"`
	EncoderTimeout int     `mapstructure:"ENCODER_TIMEOUT"`
	EncoderRPS     float64 `mapstructure:"ENCODER_RPS"`

	SpotifyClientID     string `mapstructure:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `mapstructure:"SPOTIFY_CLIENT_SECRET"`

	CatalogCSVPath string `mapstructure:"CATALOG_CSV_PATH"`
}

func NewEnv() *Env {
	env := Env{}
	viper.SetConfigFile(".env")

	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal("Can't find the file .env : ", err)
	}

	err = viper.Unmarshal(&env)
	if err != nil {
		log.Fatal("Environment can't be loaded: ", err)
	}

	if env.ContextTimeout <= 0 {
		env.ContextTimeout = 30
	}
	if env.EncoderTimeout <= 0 {
		env.EncoderTimeout = 60
	}
	if env.EncoderRPS <= 0 {
		env.EncoderRPS = 5
	}
	if env.DBName == "" {
		env.DBName = "EchoFinder"
	}

	if env.AppEnv == "development" {
		log.Println("The App is running in development env")
	}

	return &env
}
