package sourcecache

import (
	"encoding/json"
	"errors"
	"iris-dashboard/models/constants"
	"iris-dashboard/models/entities"
	"iris-dashboard/repositories/snapshots"
	"reflect"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New builds an empty cache. repo is optional; without it nothing survives a restart.
func New(repo snapshots.Repository) *Impl {
	return &Impl{
		cache: cache.New(cache.NoExpiration, 0),
		repo:  repo,
	}
}

func WeatherKey(label string) string {
	return weatherKeyPrefix + label
}

func (service *Impl) Set(key string, value any) {
	service.cache.Set(key, value, cache.NoExpiration)

	if service.repo == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str(constants.LogSourceKey, key).Msg("Cannot encode snapshot, not persisted")
		return
	}

	errSave := service.repo.Save(entities.Snapshot{SourceKey: key, Payload: payload, UpdatedAt: time.Now()})
	if errSave != nil {
		log.Error().Err(errSave).Str(constants.LogSourceKey, key).Msg("Cannot persist snapshot, continuing with memory only")
	}
}

func (service *Impl) Get(key string) (any, bool) {
	return service.cache.Get(key)
}

func (service *Impl) Restore(key string, target any) bool {
	if service.repo == nil {
		return false
	}

	snapshot, err := service.repo.FetchByKey(key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Str(constants.LogSourceKey, key).Msg("Cannot read persisted snapshot")
		}
		return false
	}

	if errDecode := json.Unmarshal(snapshot.Payload, target); errDecode != nil {
		log.Error().Err(errDecode).Str(constants.LogSourceKey, key).Msg("Cannot decode persisted snapshot")
		return false
	}

	service.cache.Set(key, reflect.ValueOf(target).Elem().Interface(), cache.NoExpiration)
	log.Info().Str(constants.LogSourceKey, key).Time("updatedAt", snapshot.UpdatedAt).Msg("Snapshot restored from storage")
	return true
}

// Lookup returns the last-known-good value of key, reading storage when memory is cold.
func Lookup[T any](store Service, key string) (T, bool) {
	var value T
	if cached, found := store.Get(key); found {
		typed, ok := cached.(T)
		return typed, ok
	}

	if store.Restore(key, &value) {
		return value, true
	}
	return value, false
}
