package servers

import "fmt"

type (
	Server struct {
		Host          string `toml:"host" validate:"required"`
		Port          int    `toml:"port" validate:"required,gt=0"`
		Pass          string `toml:"pass"`
		SSL           bool   `toml:"ssl"`
		SkipSslVerify bool   `toml:"skipSslVerify"`
	}
)

func (s Server) String() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
