package model

import "time"

// ServerSeed - секрет commit/reveal протокола.
// Инвариант: Hash == SHA256(bytes(Seed)); Used переходит false→true ровно один раз
type ServerSeed struct {
	ID        string
	Seed      string // 32 случайных байта в hex
	Hash      string // SHA256 hex от сырых байт сида
	OwnerID   int
	Used      bool
	CreatedAt time.Time
}

// SeedCommit - ответ на коммит: клиент получает id и хэш, но не сам сид
type SeedCommit struct {
	ServerSeedID string
	Hash         string
}
