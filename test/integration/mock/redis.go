package mock

import (
	"sync"

	"github.com/alicebob/miniredis/v2"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis

// NewRedis starts an in-process Redis server shared by all scenarios.
func NewRedis() *miniredis.Miniredis {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic("failed to start miniredis. err: " + err.Error())
		}
		redisServer = server
	})

	return redisServer
}

// ClearRedis drops all keys from the shared server.
func ClearRedis() {
	if redisServer != nil {
		redisServer.FlushAll()
	}
}
