package config

const (
	EnvPrefix = "FULFILLMENT"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "FULFILLMENT_APP_ENV"
	EnvPort   = "FULFILLMENT_APP_PORT"

	EnvDBDSN  = "FULFILLMENT_DB_DSN"
	EnvDBHost = "FULFILLMENT_DB_HOST"
	EnvDBUser = "FULFILLMENT_DB_USER"
	EnvDBName = "FULFILLMENT_DB_NAME"

	EnvReferenceDataURL = "FULFILLMENT_REFERENCEDATA_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
