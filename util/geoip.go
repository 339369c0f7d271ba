package util

import (
	"net"
	"os"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

var (
	geoipDB    *geoip2.Reader
	geoipCache *cache.Cache
)

// InitGeoIP initializes the local GeoIP2 database reader and an in-memory cache.
// Provide the path to a GeoIP2/GeoLite2 .mmdb file via `dbPath`.
// If dbPath is empty or the file cannot be opened, initialization is a no-op
// and lookups return empty values.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		dbPath = os.Getenv("GEOIP_DB_PATH")
	}
	if dbPath == "" {
		return nil
	}

	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipDB = r
	// Cache entries for 24h, purge every hour
	geoipCache = cache.New(24*time.Hour, 1*time.Hour)
	return nil
}

// CloseGeoIP closes the GeoIP DB if opened.
func CloseGeoIP() {
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
}

type ipLocation struct {
	City    string
	Country string
}

// GetIPLocation resolves an IP address to (city, country) using the local
// GeoIP database, consulting the cache first. Returns empty strings when the
// database is not loaded, the IP is unparseable, or the lookup fails.
func GetIPLocation(ip string) (string, string) {
	if geoipDB == nil || ip == "" {
		return "", ""
	}

	if geoipCache != nil {
		if v, found := geoipCache.Get(ip); found {
			if loc, ok := v.(ipLocation); ok {
				return loc.City, loc.Country
			}
		}
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return "", ""
	}

	rec, err := geoipDB.City(parsed)
	if err != nil {
		return "", ""
	}

	city := rec.City.Names["en"]
	country := rec.Country.Names["en"]
	if geoipCache != nil {
		geoipCache.Set(ip, ipLocation{City: city, Country: country}, cache.DefaultExpiration)
	}
	return city, country
}
