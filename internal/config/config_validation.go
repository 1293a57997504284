// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"runtime"
	"time"
)

// Default values applied by [StructuredConfig.applyDefaults]. The argon2
// defaults match the widely deployed argon2id parameters
// (19 MiB, 2 passes, 1 lane).
const (
	DefaultLogLevel        = "debug"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultQueryTimeout    = 5 * time.Second
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 4

	DefaultArgon2Memory      uint32 = 19 * 1024
	DefaultArgon2Iterations  uint32 = 2
	DefaultArgon2Parallelism uint8  = 1
)

// applyDefaults fills every zero-valued tunable with its default.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.App.Argon2.Memory == 0 {
		cfg.App.Argon2.Memory = DefaultArgon2Memory
	}
	if cfg.App.Argon2.Iterations == 0 {
		cfg.App.Argon2.Iterations = DefaultArgon2Iterations
	}
	if cfg.App.Argon2.Parallelism == 0 {
		cfg.App.Argon2.Parallelism = DefaultArgon2Parallelism
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Storage.DB.QueryTimeout == 0 {
		cfg.Storage.DB.QueryTimeout = DefaultQueryTimeout
	}
	if cfg.Storage.DB.MaxOpenConns == 0 {
		cfg.Storage.DB.MaxOpenConns = DefaultMaxOpenConns
	}
	if cfg.Storage.DB.MaxIdleConns == 0 {
		cfg.Storage.DB.MaxIdleConns = DefaultMaxIdleConns
	}

	if cfg.Workers.HashWorkers == 0 {
		cfg.Workers.HashWorkers = runtime.NumCPU()
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.QueryTimeout < 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.HashWorkers < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
