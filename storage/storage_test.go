package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		base, key, want string
	}{
		{"https://cdn.fobal.example", "players/1/avatar.png", "https://cdn.fobal.example/players/1/avatar.png"},
		{"https://cdn.fobal.example/", "/players/1/avatar.png", "https://cdn.fobal.example/players/1/avatar.png"},
		{"https://cdn.fobal.example/assets", "players/1/avatar.png", "https://cdn.fobal.example/assets/players/1/avatar.png"},
		{"", "players/1/avatar.png", ""},
		{"https://cdn.fobal.example", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PublicURL(tt.base, tt.key))
	}
}

func TestNewCloudflareR2UploaderRequiresConfig(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.ErrorIs(t, err, ErrUploaderNotConfigured)

	full := CloudflareR2UploaderConfig{
		AccountID: "acc", AccessKeyID: "key", SecretAccessKey: "secret",
		BucketName: "avatars", PublicBaseURL: "https://cdn.fobal.example",
	}
	assert.True(t, full.Enabled())

	u, err := NewCloudflareR2Uploader(context.Background(), full)
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.fobal.example/players/2/a.png", u.GetPublicURL("players/2/a.png"))
}
