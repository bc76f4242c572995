package cache

import (
	"crypto/tls"
	"sync"
	"time"

	"creativeflow/internal/config"

	"github.com/valkey-io/valkey-go"
)

const connWriteTimeout = 5 * time.Second

var (
	once         sync.Once
	valkeyClient valkey.Client
)

// GetCache returns the shared valkey client or nil when VALKEY_HOST is not
// configured. Callers treat a nil client as a disabled cache.
func GetCache() valkey.Client {
	once.Do(func() {
		env := config.GetEnv()
		if !env.IsCacheEnabled() {
			return
		}

		client, err := valkey.NewClient(clientOptions(env))
		if err != nil {
			panic(err)
		}

		valkeyClient = client
	})

	return valkeyClient
}

// Close releases the shared client. Safe to call when the cache is disabled.
func Close() {
	if client := GetCache(); client != nil {
		client.Close()
	}
}

func clientOptions(env config.EnvVariables) valkey.ClientOption {
	options := valkey.ClientOption{
		InitAddress:      []string{env.ValkeyHost + ":" + env.ValkeyPort},
		Username:         env.ValkeyUsername,
		Password:         env.ValkeyPassword,
		ConnWriteTimeout: connWriteTimeout,
		// no client-side caching
		DisableCache: true,
	}

	if env.ValkeyIsSsl {
		options.TLSConfig = &tls.Config{
			ServerName: env.ValkeyHost,
			MinVersion: tls.VersionTLS12,
		}
	}

	return options
}
