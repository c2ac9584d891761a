// Package storage is the local persistence layer for fridgechef.
// It keeps JSON documents in an embedded BadgerDB, one key per slot and scope,
// so ingredient lists and favorites survive between runs on the same device.
package storage
