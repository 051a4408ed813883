/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
)

var (
	IsDevelopment  *bool
	ServiceName    *string
	AppSettingPath *string
)

func init() {
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName = flag.String("service", APIServer, "name of the service for logging")
	AppSettingPath = flag.String("app_setting", "", "path to the yaml app setting, empty means built-in defaults")
}

// ParseFlags must be called from main before any flag value is read.
// Parsing is deliberately not done in init so that `go test` flags
// registered later are not rejected.
func ParseFlags() {
	flag.Parse()
}
