// Package kv persists simulation round results in pebble, bucketed by the h3 cell of the round's
// start point.
package kv

import (
	"errors"
	"math"
	"sync"

	"lintang/congestionnav/pkg/concurrent"
	"lintang/congestionnav/pkg/server"
	"lintang/congestionnav/pkg/simulation"

	"github.com/cockroachdb/pebble"
	"github.com/uber/h3-go/v4"
	"go.uber.org/zap"
)

const (
	h3Resolution = 9
	keyPrefix    = "round:"
)

type KVDB struct {
	db *pebble.DB
	// serialize read-modify-write per SaveRounds call
	mu sync.Mutex
}

func NewKVDB(db *pebble.DB) *KVDB {
	return &KVDB{db: db}
}

// Open pebble database at path.
func Open(path string) (*KVDB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, "open pebble at %s", path)
	}
	return NewKVDB(db), nil
}

func cellKey(lat, lon float64) (h3.Cell, []byte) {
	cell := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	return cell, []byte(keyPrefix + cell.String())
}

// SaveRounds appends results to their h3 bucket. Buckets are written in parallel by a worker pool.
func (k *KVDB) SaveRounds(results []simulation.RoundResult) error {
	if len(results) == 0 {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	buckets := make(map[string][]simulation.RoundResult)
	for _, r := range results {
		_, key := cellKey(r.StartLat, r.StartLon)
		buckets[string(key)] = append(buckets[string(key)], r)
	}

	workers := concurrent.NewWorkerPool[concurrent.SaveRoundsJobItem, error](4, len(buckets))
	for keyStr, valArr := range buckets {
		workers.AddJob(concurrent.SaveRoundsJobItem{KeyStr: keyStr, ValArr: valArr})
	}
	workers.Close()

	workers.Start(k.saveBucket)
	workers.Wait()

	var errs []error
	for err := range workers.CollectResults() {
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return server.WrapErrorf(errors.Join(errs...), server.ErrInternalServerError, "save %d round buckets", len(buckets))
	}
	zap.L().Debug("rounds saved", zap.Int("rounds", len(results)), zap.Int("buckets", len(buckets)))
	return nil
}

func (k *KVDB) saveBucket(item concurrent.SaveRoundsJobItem) error {
	key := []byte(item.KeyStr)

	existing, err := k.get(key)
	if err != nil {
		return err
	}
	val, err := CompressRounds(append(existing, item.ValArr...))
	if err != nil {
		return err
	}
	return k.db.Set(key, val, pebble.Sync)
}

func (k *KVDB) get(key []byte) ([]simulation.RoundResult, error) {
	val, closer, err := k.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return LoadRounds(val)
}

// GetRoundsNear results whose start point lies in the h3 cells covering radiusKm around (lat, lon).
func (k *KVDB) GetRoundsNear(lat, lon, radiusKm float64) ([]simulation.RoundResult, error) {
	rounds := []simulation.RoundResult{}
	for _, cell := range kRingIndexesArea(lat, lon, radiusKm) {
		found, err := k.get([]byte(keyPrefix + cell.String()))
		if err != nil {
			return nil, server.WrapErrorf(err, server.ErrInternalServerError, "read rounds of cell %s", cell.String())
		}
		rounds = append(rounds, found...)
	}
	return rounds, nil
}

/*
*
  - https://observablehq.com/@nrabinowitz/h3-radius-lookup?collection=@nrabinowitz/h3
    search cell neighbor dari cell dari lat,lon  yang radius nya = searchRadiusKm
*/
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin, _ := cellKey(lat, lon)
	originArea := h3.CellAreaKm2(origin)
	searchArea := math.Pi * searchRadiusKm * searchRadiusKm

	radius := 0
	diskArea := originArea

	for diskArea < searchArea {
		radius++
		cellCount := float64(3*radius*(radius+1) + 1)
		diskArea = cellCount * originArea
	}

	return h3.GridDisk(origin, radius)
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
