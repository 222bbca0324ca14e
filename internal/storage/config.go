package storage

// S3Config holds connection settings for an S3-compatible blob store.
type S3Config struct {
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
	UseSSL       bool
	Bucket       string
}
