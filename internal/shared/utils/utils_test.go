package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Voidreaper":        "voidreaper",
		"Mötley Crüe":       "motley-crue",
		"  Blue   Öyster  ":  "blue-oyster",
		"AC/DC":             "ac-dc",
		"Sólstafir!!":       "solstafir",
		"---":               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestCleanFileName(t *testing.T) {
	cases := map[string]string{
		"Logo Final.PNG":            "logo-final.png",
		"../../etc/passwd":          "passwd",
		`C:\Users\me\Ærø cover.jpg`: "r-cover.jpg",
		"Émpire.jpeg":               "empire.jpeg",
		".jpg":                      "file.jpg",
		"":                          "file",
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanFileName(in), in)
	}
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 12, ClampInt("", 12, 1, 50))
	assert.Equal(t, 12, ClampInt("abc", 12, 1, 50))
	assert.Equal(t, 50, ClampInt("500", 12, 1, 50))
	assert.Equal(t, 1, ClampInt("-3", 12, 1, 50))
	assert.Equal(t, 7, ClampInt("7", 12, 1, 50))
}

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, ParseStringToUUID(" "+id.String()+" "))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("42"))
}

func TestExtractClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	c.Request.RemoteAddr = "10.0.0.9:5555"
	assert.Equal(t, "10.0.0.9", ExtractClientIP(c))

	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ExtractClientIP(c))
}
