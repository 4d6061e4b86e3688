package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// configCache stores parsed configuration structs keyed by type name. Each key
// has its own mutex so concurrent first loads of one type parse it once while
// other types load in parallel.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	locks  map[string]*sync.Mutex
}

var (
	globalCache = newConfigCache()

	defaultEnvMu     sync.Mutex
	defaultEnvLoaded bool
)

func newConfigCache() *configCache {
	return &configCache{
		values: make(map[string]any),
		locks:  make(map[string]*sync.Mutex),
	}
}

func (c *configCache) get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *configCache) set(key string, v any) {
	c.mu.Lock()
	c.values[key] = v
	c.mu.Unlock()
}

func (c *configCache) lock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[key]
	if !ok {
		l = new(sync.Mutex)
		c.locks[key] = l
	}
	return l
}

// Load parses environment variables into the struct pointed to by v, using
// caarlos0/env field tags. Each configuration type is parsed once per process;
// later calls for the same type are served from the cache. The default .env
// file in the working directory is loaded on first use if it exists.
//
// Example:
//
//	type Settings struct {
//		LogFormat string `env:"ENVCHECK_LOG_FORMAT" envDefault:"text"`
//		LogLevel  string `env:"ENVCHECK_LOG_LEVEL" envDefault:"info"`
//	}
//
//	var s Settings
//	if err := config.Load(&s); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	loadDefaultEnv()
	if v == nil {
		return ErrNilPointer
	}

	key := getTypeName[T]()
	if cached, ok := globalCache.get(key); ok {
		*v = cached.(T)
		return nil
	}

	l := globalCache.lock(key)
	l.Lock()
	defer l.Unlock()

	// Another goroutine may have finished parsing while we waited.
	if cached, ok := globalCache.get(key); ok {
		*v = cached.(T)
		return nil
	}

	if err := parse(v); err != nil {
		return err
	}
	globalCache.set(key, *v)
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ForceReloadConfig parses v again, bypassing and then refreshing the cache.
// Useful after the process environment changed, mostly in tests.
func ForceReloadConfig[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	key := getTypeName[T]()
	l := globalCache.lock(key)
	l.Lock()
	defer l.Unlock()

	if err := parse(v); err != nil {
		return err
	}
	globalCache.set(key, *v)
	return nil
}

// ResetCache drops every cached configuration and forgets that the default
// .env file was loaded.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[string]any)
	globalCache.locks = make(map[string]*sync.Mutex)
	globalCache.mu.Unlock()

	defaultEnvMu.Lock()
	defaultEnvLoaded = false
	defaultEnvMu.Unlock()
}

// LoadEnv loads variables from the given .env files into the process
// environment, later files overriding earlier ones and the existing
// environment. With no arguments it loads ./.env.
func LoadEnv(files ...string) error {
	if err := godotenv.Overload(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}

	defaultEnvMu.Lock()
	defaultEnvLoaded = true
	defaultEnvMu.Unlock()
	return nil
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(files ...string) {
	if err := LoadEnv(files...); err != nil {
		panic(fmt.Sprintf("Failed to load env files: %v", err))
	}
}

func loadDefaultEnv() {
	defaultEnvMu.Lock()
	defer defaultEnvMu.Unlock()
	if defaultEnvLoaded {
		return
	}
	// The default .env file is optional.
	_ = godotenv.Load()
	defaultEnvLoaded = true
}

func parse[T any](v *T) error {
	if reflect.TypeOf(v).Elem().Kind() != reflect.Struct {
		return ErrInvalidConfigType
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// getTypeName returns a string identifier for the generic type T
func getTypeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		// Handle interface types
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
