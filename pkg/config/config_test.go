package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "MONGO_DATABASE", "MEDIA_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %s, want development", cfg.Env)
	}
	if cfg.MongoDatabase != "beefboard" {
		t.Errorf("MongoDatabase = %s, want beefboard", cfg.MongoDatabase)
	}
	if cfg.MediaBackend != "none" {
		t.Errorf("MediaBackend = %s, want none", cfg.MediaBackend)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MEDIA_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "beefboard-media")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if cfg.MediaBackend != "s3" || cfg.S3Bucket != "beefboard-media" {
		t.Errorf("media config = %s/%s", cfg.MediaBackend, cfg.S3Bucket)
	}
}
