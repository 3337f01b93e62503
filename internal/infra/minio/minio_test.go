package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPublicURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000/thumbnails/a.png",
		GetPublicURL("localhost:9000", false, "thumbnails", "a.png"))
	assert.Equal(t, "https://cdn.example.com/thumbnails/a.png",
		GetPublicURL("cdn.example.com", true, "thumbnails", "a.png"))
	assert.Equal(t, "https://cdn.example.com/thumbnails/a.png",
		GetPublicURL("https://cdn.example.com/", false, "thumbnails", "a.png"))
}
