package app_setting

import (
	"io/ioutil"
	"log"

	"gopkg.in/yaml.v2"
)

// This is the app setting for the api server.
type ServerAppSetting struct {
	// Port the http server binds to.
	SERVER_PORT int `yaml:"SERVER_PORT"`
	// Allowed CORS origins. Empty means allow all, which is only
	// acceptable in development.
	CORS_ALLOW_ORIGINS []string `yaml:"CORS_ALLOW_ORIGINS"`
	// Access token lifetime in hours.
	TOKEN_EXPIRE_HOUR int64 `yaml:"TOKEN_EXPIRE_HOUR"`
}

// DefaultServerAppSetting is used when no yaml path is passed on the
// command line.
func DefaultServerAppSetting() ServerAppSetting {
	return ServerAppSetting{
		SERVER_PORT:       8080,
		TOKEN_EXPIRE_HOUR: 24,
	}
}

func ParseServerAppSetting(path string) ServerAppSetting {
	c := ServerAppSetting{}
	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		log.Fatal("yamlFile. get err: ", err.Error())
	}
	err = yaml.Unmarshal(yamlFile, &c)
	if err != nil {
		log.Fatal("Unmarshal: ", err)
	}
	return c
}
