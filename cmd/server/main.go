package main

import (
	"fmt"

	"github.com/wirefeed/wirefeed/app_setting"
	"github.com/wirefeed/wirefeed/server"
	"github.com/wirefeed/wirefeed/server/middlewares"
	"github.com/wirefeed/wirefeed/utils"
	"github.com/wirefeed/wirefeed/utils/dotenv"
	flags "github.com/wirefeed/wirefeed/utils/flag"
	. "github.com/wirefeed/wirefeed/utils/log"
)

func main() {
	flags.ParseFlags()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	// Middlewares need the token secret from env, so setup happens after
	// dotenv loading.
	middlewares.Setup()

	setting := app_setting.DefaultServerAppSetting()
	if *flags.AppSettingPath != "" {
		setting = app_setting.ParseServerAppSetting(*flags.AppSettingPath)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Log.Fatal("fail to migrate DB: ", err)
	}

	router := server.NewRouter(server.NewHandlers(db, setting))

	Log.Info("api server starts up")
	router.Run(fmt.Sprintf(":%d", setting.SERVER_PORT))
}
