package storage

// Config selects and configures the artifact storage backend.
type Config struct {
	// S3 is used when an endpoint or bucket is configured; otherwise
	// artifacts land in LocalDir.
	S3       S3Config
	LocalDir string
}

// NewStorage creates an ArtifactStorage instance based on the
// configuration: S3-compatible object storage when configured, local
// filesystem otherwise.
func NewStorage(cfg *Config) (ArtifactStorage, error) {
	if cfg.S3.Endpoint != "" || cfg.S3.Bucket != "" {
		return NewS3Storage(&cfg.S3)
	}

	dir := cfg.LocalDir
	if dir == "" {
		dir = "./data/exports"
	}
	return NewLocalStorage(dir)
}
