package configs

// Sheets configures the Google Sheets reporting sink. SpreadsheetID is the
// ID from the sheet URL. CredentialsFile points to a service-account JSON
// key with spreadsheets scope; when empty the client falls back to
// application default credentials.
type Sheets struct {
	SpreadsheetID   string `env:"SPREADSHEET_ID,required"`
	CredentialsFile string `env:"CREDENTIALS_FILE"`

	PerformanceTab string `env:"PERFORMANCE_TAB" envDefault:"Daily Performance"`
	BudgetTab      string `env:"BUDGET_TAB" envDefault:"Budget Changes"`
	AlertsTab      string `env:"ALERTS_TAB" envDefault:"Alerts"`
}
