/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package providers

import (
	"context"

	"github.com/chainguard-dev/clog"
)

// Registry holds the providers constructed at startup. It is explicitly
// built and passed to consumers; there is no lazily-initialized global.
type Registry struct {
	providers []Provider
}

// NewRegistry constructs a registry and initializes each provider.
// Initialization is best-effort: a provider whose Init fails is still
// registered, since Init failures are degraded-cache conditions by contract.
func NewRegistry(ctx context.Context, provs ...Provider) *Registry {
	log := clog.FromContext(ctx)
	for _, p := range provs {
		if err := p.Init(ctx); err != nil {
			log.With("provider", p.Name()).
				With("error", err.Error()).
				Warn("Provider init failed, registering anyway")
		}
	}
	return &Registry{providers: provs}
}

// ByKind returns all providers of the given kind, in registration order.
func (r *Registry) ByKind(kind Kind) []Provider {
	var out []Provider
	for _, p := range r.providers {
		if p.Kind() == kind {
			out = append(out, p)
		}
	}
	return out
}

// FirstTaskManager returns the preferred task-manager provider, or nil when
// none is configured.
func (r *Registry) FirstTaskManager() Provider {
	if tms := r.ByKind(KindTaskManager); len(tms) > 0 {
		return tms[0]
	}
	return nil
}

// Get returns the named provider, or nil.
func (r *Registry) Get(name string) Provider {
	for _, p := range r.providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
