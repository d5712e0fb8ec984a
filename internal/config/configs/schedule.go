package configs

// Schedule configures the optional self-scheduled mode. Cron is a standard
// cron expression (or a descriptor like "@daily"); when empty the process
// only runs when the HTTP trigger is called, matching an external scheduler
// setup.
type Schedule struct {
	Cron string `env:"CRON"`
}
