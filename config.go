package ohmage

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups client settings taken from environment variables with the
// prefix "OHMAGE_". Example: OHMAGE_SERVER=https://dev.mobilizingcs.org
// OHMAGE_CLIENT=my-importer .
type Config struct {
	Server      string        `envconfig:"SERVER"       required:"true"`
	AppPrefix   string        `envconfig:"APP_PREFIX"   default:"/app"`
	Client      string        `envconfig:"CLIENT"       default:"ohmage-go-client"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

// LoadConfig populates Config from environment variables (prefix OHMAGE_).
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("OHMAGE", &c)
}
