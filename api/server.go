// Package api exposes the bundling engine over HTTP to the merchandiser
// UI and the chat assistant.
package api

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/raushankrgupta/bundle-strategist/assistant"
	"github.com/raushankrgupta/bundle-strategist/bundles"
	"github.com/raushankrgupta/bundle-strategist/profile"
	"github.com/raushankrgupta/bundle-strategist/store"
)

// Server holds the handler dependencies. Everything is injected at startup;
// handlers never reach for ambient state.
type Server struct {
	Bundles  *bundles.Service
	Profiles *profile.Builder
	Parser   assistant.Parser
	Snapshot *store.Snapshot
	Mongo    *store.MongoStore // nil when running from CSV files
	Users    *mongo.Collection // nil when auth is disabled
}

// NewServer creates the API server.
func NewServer(bundleService *bundles.Service, profiles *profile.Builder, parser assistant.Parser, snapshot *store.Snapshot, mongoStore *store.MongoStore) *Server {
	s := &Server{
		Bundles:  bundleService,
		Profiles: profiles,
		Parser:   parser,
		Snapshot: snapshot,
		Mongo:    mongoStore,
	}
	if mongoStore != nil {
		s.Users = mongoStore.Collection("users")
	}
	return s
}
