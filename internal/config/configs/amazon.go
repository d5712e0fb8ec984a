package configs

// Amazon holds Amazon Advertising API credentials. All four credential
// fields come from the advertising console's API access page; Region picks
// the API host (NA, EU or FE).
type Amazon struct {
	ClientID     string `env:"CLIENT_ID,required"`
	ClientSecret string `env:"CLIENT_SECRET,required"`
	RefreshToken string `env:"REFRESH_TOKEN,required"`
	// ProfileID scopes every API call to one seller profile.
	ProfileID string `env:"PROFILE_ID,required"`
	Region    string `env:"REGION" envDefault:"NA"`
}
