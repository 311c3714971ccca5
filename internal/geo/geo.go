package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/env"

	"github.com/go-redis/redis/v8"
)

const (
	lookupTimeout = 2 * time.Second
	cacheTTL      = 24 * time.Hour
	defaultAPIURL = "http://ip-api.com/json"
)

// cgnatRange is the carrier-grade NAT block some hosting providers use for
// internal traffic. Addresses in it never resolve to a real location.
var cgnatRange = net.IPNet{
	IP:   net.IPv4(100, 64, 0, 0),
	Mask: net.CIDRMask(10, 32),
}

// Location is a best-effort geolocation result. Nil fields mean the address
// could not be resolved; callers must store them as nulls, not empty strings.
type Location struct {
	Country *string `json:"country"`
	City    *string `json:"city"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *redis.Client
}

// NewClient builds a lookup client. cache may be nil, in which case every
// lookup goes to the provider.
func NewClient(cache *redis.Client) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: lookupTimeout,
		},
		baseURL: env.GetOrDefault(env.GeoAPIURL, defaultAPIURL),
		cache:   cache,
	}
}

// CleanIP normalises an address taken from a forwarded-for chain: strips the
// IPv6-to-IPv4 mapping prefix, trailing ports on plain IPv4 and bracketed
// IPv6 forms, and surrounding whitespace.
func CleanIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if strings.HasPrefix(ip, "::ffff:") {
		ip = strings.TrimPrefix(ip, "::ffff:")
	}
	if strings.HasPrefix(ip, "[") {
		if end := strings.LastIndex(ip, "]"); end != -1 {
			ip = ip[1:end]
		}
	} else if strings.Count(ip, ":") == 1 {
		ip = ip[:strings.Index(ip, ":")]
	}
	return strings.TrimSpace(ip)
}

// skipLookup reports whether the address can never resolve to a public
// location: empty or unparseable input, loopback, RFC1918 ranges, and the
// CGNAT block.
func skipLookup(ip string) bool {
	if ip == "" || ip == "unknown" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	if parsed.IsLoopback() || parsed.IsPrivate() {
		return true
	}
	return cgnatRange.Contains(parsed)
}

// Lookup resolves an IP to a country and city. It never returns an error:
// private addresses, provider failures, and timeouts all yield an empty
// Location so a slow or broken provider cannot stall the logging path.
func (c *Client) Lookup(ctx context.Context, ip string) Location {
	ip = CleanIP(ip)
	if skipLookup(ip) {
		return Location{}
	}

	if loc, ok := c.cached(ctx, ip); ok {
		return loc
	}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s?fields=country,city", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("geo lookup failed for %s: %v", ip, err)
		return Location{}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Printf("geo lookup for %s returned status %d", ip, res.StatusCode)
		return Location{}
	}

	var body struct {
		Country string `json:"country"`
		City    string `json:"city"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		log.Printf("geo lookup decode failed for %s: %v", ip, err)
		return Location{}
	}

	loc := Location{}
	if body.Country != "" {
		loc.Country = &body.Country
	}
	if body.City != "" {
		loc.City = &body.City
	}

	c.store(ctx, ip, loc)
	return loc
}

func cacheKey(ip string) string {
	return "geo:" + ip
}

func (c *Client) cached(ctx context.Context, ip string) (Location, bool) {
	if c.cache == nil {
		return Location{}, false
	}

	val, err := c.cache.Get(ctx, cacheKey(ip)).Result()
	if err == redis.Nil {
		return Location{}, false
	} else if err != nil {
		return Location{}, false
	}

	var loc Location
	if err := json.Unmarshal([]byte(val), &loc); err != nil {
		return Location{}, false
	}
	return loc, true
}

func (c *Client) store(ctx context.Context, ip string, loc Location) {
	if c.cache == nil {
		return
	}

	data, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(ip), data, cacheTTL).Err(); err != nil {
		log.Printf("geo cache set failed for %s: %v", ip, err)
	}
}
