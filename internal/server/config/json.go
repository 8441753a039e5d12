package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/decolog/decolog/internal/flagx"
	"github.com/decolog/decolog/internal/timex"
)

// JsonConfig is the intermediate DTO for the JSON config file. It uses
// timex.Duration for interval fields so both "30s" strings and integer
// nanoseconds parse; values are then copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	WebhookSecret         string         `json:"webhook_secret"`
	CheckoutBaseURL       string         `json:"checkout_base_url"`
	CheckoutSecret        string         `json:"checkout_secret"`
	CheckoutPriceIDPro    string         `json:"checkout_price_id_pro"`
	CheckoutPriceIDCloud  string         `json:"checkout_price_id_cloud"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the JSON file named by the -c/-config flag
// onto cfg. Keys absent from the file keep their current values. A file that
// cannot be read or parsed is a startup error, so the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.WebhookSecret != "" {
		config.WebhookSecret = c.WebhookSecret
	}
	if c.CheckoutBaseURL != "" {
		config.CheckoutBaseURL = c.CheckoutBaseURL
	}
	if c.CheckoutSecret != "" {
		config.CheckoutSecret = c.CheckoutSecret
	}
	if c.CheckoutPriceIDPro != "" {
		config.CheckoutPriceIDPro = c.CheckoutPriceIDPro
	}
	if c.CheckoutPriceIDCloud != "" {
		config.CheckoutPriceIDCloud = c.CheckoutPriceIDCloud
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = time.Duration(c.ShutdownTimeout.Duration)
	}
}
