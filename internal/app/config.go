package app

// Defaults are applied below the config file and the GOFTA_* environment.
func Defaults() map[string]any {
	return map[string]any{
		"tz":                          "UTC",
		"server.address.http":         ":8080",
		"modules.fta.enabled":         true,
		"database.driver":             "sqlite",
		"database.sqlite.path":        "./data/gofta.db",
		"database.log_mode":           false,
		"upload.max_bytes":            10 << 20,
		"fraud.threshold.transaction": "100000",
		"fraud.threshold.account":     "1000000",
		"fraud.threshold.agency":      "1000000000",
		"generator.size":              50,
		"generator.banks":             []string{},
		"events.buffer":               512,
		"events.workers":              2,
		"events.dedupe_size":          4096,
	}
}
