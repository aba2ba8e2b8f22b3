package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "STAYHARBOR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "STAYHARBOR_DB_DSN"
	EnvDBHost = "STAYHARBOR_DB_HOST"
	EnvDBUser = "STAYHARBOR_DB_USER"
	EnvDBName = "STAYHARBOR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
