package configs

// HTTP defines configuration for the trigger server. Port is the TCP port
// the run webhook and health endpoint listen on.
type HTTP struct {
	Port uint16 `env:"PORT" envDefault:"8080"`
}
