package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitGeoIPWithoutDatabaseIsNoOp(t *testing.T) {
	t.Setenv("GEOIP_DB_PATH", "")
	CloseGeoIP()

	if err := InitGeoIP(""); err != nil {
		t.Fatalf("expected no-op init, got error: %v", err)
	}

	city, country := GetIPLocation("8.8.8.8")
	assert.Empty(t, city)
	assert.Empty(t, country)
}

func TestInitGeoIPRejectsMissingFile(t *testing.T) {
	if err := InitGeoIP("/nonexistent/geoip.mmdb"); err == nil {
		t.Fatal("expected error for missing database file")
	}
}

func TestGetIPLocationUnparseableIP(t *testing.T) {
	CloseGeoIP()
	city, country := GetIPLocation("not-an-ip")
	assert.Empty(t, city)
	assert.Empty(t, country)
}
