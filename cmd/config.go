package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	GCSBucket         string
	GCSPublicBaseURL  string
	GCSEmulatorHost   string
	GeoTrackerBaseURL string
	AutoSaveQuietMs   int
}
