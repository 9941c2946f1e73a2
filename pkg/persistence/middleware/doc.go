// Package middleware decorates a DocumentStore.
//
// The encryption middleware seals shared documents before they reach the backing store,
// so a Redis instance holding shared pages never sees the machine or its HTML in clear text:
//
//	store := middleware.Chain(redisStore,
//		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
//	)
package middleware
