package simulator

import (
	"math"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"solar_yield/internal/metrics"
	"solar_yield/internal/model"
)

// Orientation search grid shared by the baseline and the day optimizer.
const (
	minAzimuth    = 90.0
	maxAzimuth    = 270.0
	azimuthStep   = 10.0
	minTilt       = 0.0
	maxTilt       = 90.0
	tiltStep      = 5.0
	refineAzimuth = 10.0
	refineTilt    = 5.0
	refineStep    = 1.0
)

// MaxBaselineEntries bounds the cache: 1801 latitude buckets (-90.0..90.0 in
// 0.1° steps) times 365 days. Entries are never evicted.
const MaxBaselineEntries = 1801 * 365

type baselineKey struct {
	latBucket int // latitude * 10, rounded
	doy       int
}

func keyFor(lat float64, doy int) baselineKey {
	return baselineKey{latBucket: int(math.Round(lat * 10)), doy: doy}
}

func (k baselineKey) lat() float64 {
	return float64(k.latBucket) / 10
}

func (k baselineKey) String() string {
	return strconv.Itoa(k.latBucket) + "/" + strconv.Itoa(k.doy)
}

// BaselineCache memoizes the best unshaded energy factor per
// (latitude bucket, day). Safe for concurrent use; concurrent misses on the
// same key run the search once.
type BaselineCache struct {
	mu      sync.RWMutex
	entries map[baselineKey]float64
	group   singleflight.Group
}

func NewBaselineCache() *BaselineCache {
	return &BaselineCache{entries: make(map[baselineKey]float64)}
}

// Get returns the baseline for lat and doy, computing it on first use. The
// search runs at the bucket latitude so the stored value does not depend on
// which caller filled it.
func (c *BaselineCache) Get(lat float64, doy int) float64 {
	key := keyFor(lat, doy)

	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		metrics.BaselineCacheHits.Inc()
		return v
	}

	res, _, _ := c.group.Do(key.String(), func() (interface{}, error) {
		c.mu.RLock()
		v, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return v, nil
		}

		metrics.BaselineCacheMisses.Inc()
		v = searchBaseline(key.lat(), key.doy)

		c.mu.Lock()
		c.entries[key] = v
		n := len(c.entries)
		c.mu.Unlock()
		metrics.BaselineCacheEntries.Set(float64(n))
		return v, nil
	})
	return res.(float64)
}

// Len returns the number of cached baselines.
func (c *BaselineCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// searchBaseline finds the highest unshaded energy factor over the coarse
// grid, then refines around the best cell at 1° resolution. Only the energy
// is kept.
func searchBaseline(lat float64, doy int) float64 {
	best := -1.0
	bestAz, bestTilt := minAzimuth, minTilt
	for az := minAzimuth; az <= maxAzimuth; az += azimuthStep {
		for tilt := minTilt; tilt <= maxTilt; tilt += tiltStep {
			e := IdealEnergy(lat, doy, model.Orientation{Azimuth: az, Tilt: tilt}, model.NoShadow)
			if e > best {
				best, bestAz, bestTilt = e, az, tilt
			}
		}
	}

	azLo, azHi := clamp(bestAz-refineAzimuth, minAzimuth, maxAzimuth), clamp(bestAz+refineAzimuth, minAzimuth, maxAzimuth)
	tiltLo, tiltHi := clamp(bestTilt-refineTilt, minTilt, maxTilt), clamp(bestTilt+refineTilt, minTilt, maxTilt)
	for az := azLo; az <= azHi; az += refineStep {
		for tilt := tiltLo; tilt <= tiltHi; tilt += refineStep {
			e := IdealEnergy(lat, doy, model.Orientation{Azimuth: az, Tilt: tilt}, model.NoShadow)
			if e > best {
				best = e
			}
		}
	}
	return math.Max(best, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
