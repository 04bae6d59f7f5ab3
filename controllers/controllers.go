package controllers

import (
	"github.com/reservalo/booking-api/availability"
	"github.com/reservalo/booking-api/cache"
	"github.com/reservalo/booking-api/db"
)

var (
	appCache *cache.Cache
	resolver *availability.Resolver
)

// Setup wires the cache service constructed in main into the handlers.
// Must run after db.Init.
func Setup(c *cache.Cache) {
	appCache = c
	resolver = availability.NewResolver(db.DB, c)
}
