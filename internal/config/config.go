package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Server captures process-level configuration.
type Server struct {
	Addr string
	Dev  bool
}

// FromEnv builds a Server config from a .env file (if present) and
// environment variables so main stays lean.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := os.Getenv("DRAW_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr: addr,
		Dev:  os.Getenv("DRAW_ENV") == "dev",
	}
}
