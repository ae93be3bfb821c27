package config

// EnvPrefix is handed to envconfig; every field carries an explicit name.
const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	CatalogSourceFile = "file"
	CatalogSourceDB   = "db"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv          = "STOREFRONT_APP_ENV"
	EnvPort            = "STOREFRONT_APP_PORT"
	EnvLogLevel        = "STOREFRONT_LOG_LEVEL"
	EnvCatalogSource   = "STOREFRONT_CATALOG_SOURCE"
	EnvCatalogPath     = "STOREFRONT_CATALOG_PATH"
	EnvMergeDuplicates = "STOREFRONT_CART_MERGE_DUPLICATES"
	EnvCurrencySymbol  = "STOREFRONT_CURRENCY_SYMBOL"
	EnvLocale          = "STOREFRONT_LOCALE"
	EnvDBDSN           = "STOREFRONT_DB_DSN"
	EnvDBDriver        = "STOREFRONT_DB_DRIVER"
	EnvDBHost          = "STOREFRONT_DB_HOST"
	EnvDBUser          = "STOREFRONT_DB_USER"
	EnvDBName          = "STOREFRONT_DB_NAME"
	EnvRedisURL        = "STOREFRONT_REDIS_URL"
	EnvIdempotencyTTL  = "STOREFRONT_IDEMPOTENCY_TTL"
)

var postgresPartsEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
