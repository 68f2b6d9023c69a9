// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

const (
	dbPut = iota
	dbDelete
)

type cacheData struct {
	op    int
	value []byte
}

// overlay - pending writes of one transaction level
//
// items never expire, they live until the transaction finishes
type overlay struct {
	cache *cache.Cache
}

func newOverlay() *overlay {
	return &overlay{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// found is true for both puts and deletes, a delete hides the key
// from lower levels
func (o *overlay) get(key string) (cacheData, bool) {
	obj, found := o.cache.Get(key)
	if !found {
		return cacheData{}, false
	}
	return obj.(cacheData), true
}

func (o *overlay) set(op int, key string, value []byte) {
	o.cache.Set(key, cacheData{op: op, value: value}, cache.NoExpiration)
}

func (o *overlay) items() map[string]cacheData {
	items := o.cache.Items()
	result := make(map[string]cacheData, len(items))
	for k, item := range items {
		result[k] = item.Object.(cacheData)
	}
	return result
}

func (o *overlay) count() int {
	return o.cache.ItemCount()
}

func (o *overlay) clear() {
	o.cache.Flush()
}
