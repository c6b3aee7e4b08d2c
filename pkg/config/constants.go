package config

const (
	// EnvPrefix namespaces every environment variable read by envconfig.
	EnvPrefix = "JUNAVO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "JUNAVO_DB_DSN"
	EnvDBHost = "JUNAVO_DB_HOST"
	EnvDBUser = "JUNAVO_DB_USER"
	EnvDBName = "JUNAVO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
