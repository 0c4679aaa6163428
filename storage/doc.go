// Package storage is a thin client for the object-storage service holding
// profile and event images: upload by key, retrieve a public URL. The
// storage API speaks raw bytes, not the backend's JSON envelope, so this
// package does its own minimal status handling and is deliberately not
// modeled further.
package storage
