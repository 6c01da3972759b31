package config

const (
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvPort           = "STOREFRONT_APP_PORT"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvCatalogBaseURL = "STOREFRONT_CATALOG_BASE_URL"
	EnvCatalogTimeout = "STOREFRONT_CATALOG_TIMEOUT"
	EnvStorageDriver  = "STOREFRONT_STORAGE_DRIVER"
	EnvStorageDir     = "STOREFRONT_STORAGE_DIR"
	EnvStorageNS      = "STOREFRONT_STORAGE_NAMESPACE"
	EnvDBDSN          = "STOREFRONT_DB_DSN"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvRedisAddr      = "STOREFRONT_REDIS_ADDR"
	EnvCORSOrigins    = "STOREFRONT_CORS_ALLOWED_ORIGINS"

	StorageDriverFile     = "file"
	StorageDriverMemory   = "memory"
	StorageDriverRedis    = "redis"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)
