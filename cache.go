/*
Copyright © 2019 the SwathRepr authors.
This file is part of SwathRepr.

SwathRepr is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SwathRepr is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SwathRepr.  If not, see <http://www.gnu.org/licenses/>.
*/

package swathrepr

import (
	"context"
	"fmt"

	"github.com/ctessum/requestcache"
)

// mappingCacheSize is the maximum number of reprojection-information
// entries held in memory. Input granules rarely reference more than a
// handful of distinct coordinate grids.
const mappingCacheSize = 100

// mappingRequest is the payload for one reprojection-information
// computation.
type mappingRequest struct {
	swath  *Swath
	area   *AreaDef
	method Method
}

// MappingCache memoizes algorithm-specific reprojection information per
// source coordinate grid. Entries are computed lazily on first use and
// reused for every variable sharing the same coordinate key within a job;
// they are immutable after creation. Request deduplication guarantees
// at-most-once computation per key even with concurrent callers, so a
// future parallel variable loop needs no additional locking here.
type MappingCache struct {
	cache *requestcache.Cache
}

// NewMappingCache creates an empty job-scoped cache. Nothing is persisted
// or shared across jobs.
func NewMappingCache() *MappingCache {
	return &MappingCache{
		cache: requestcache.NewCache(computeMapping, 1,
			requestcache.Deduplicate(), requestcache.Memory(mappingCacheSize)),
	}
}

// Get returns the reprojection information for the given swath, target
// area, and method, computing and storing it on first use. Methods in the
// same family (the two EWA modes) share entries.
func (c *MappingCache) Get(ctx context.Context, swath *Swath, area *AreaDef, method Method) (interface{}, error) {
	key := fmt.Sprintf("%s|%s", swath.Key, method.family())
	req := c.cache.NewRequest(ctx, &mappingRequest{swath: swath, area: area, method: method}, key)
	return req.Result()
}

// computeMapping dispatches to the algorithm-specific precomputation.
func computeMapping(ctx context.Context, payload interface{}) (interface{}, error) {
	req := payload.(*mappingRequest)
	switch req.method {
	case MethodBilinear:
		return computeBilinearInfo(req.swath, req.area)
	case MethodEWA, MethodEWANearest:
		return computeEWAInfo(req.swath, req.area)
	case MethodNearest:
		return computeNearestInfo(req.swath, req.area)
	}
	return nil, &InvalidInterpolationError{Method: req.method.String()}
}
