/*
Copyright 2026 Meetingops, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package identity fuzzy-matches free-text names against a provider's known
// user list.
package identity

import (
	"strings"

	"github.com/meetingops/actioneer/providers"
)

// Match resolves a free-text name (and optional email) against candidates.
// Resolution tiers, first match wins, all case-insensitive:
//
//  1. exact email equality
//  2. exact full-name equality, or email local-part equality to the name
//  3. candidate name prefix or substring containment; single-word queries
//     also match a candidate whose first name token equals the query
//
// Match is pure and deterministic: given the same candidate ordering it
// always returns the same result. Returns nil when no tier matches.
func Match(name, email string, candidates []providers.User) *providers.User {
	if name == "" && email == "" {
		return nil
	}

	// Exact email match is the strongest signal.
	if email != "" {
		lower := strings.ToLower(email)
		for i, u := range candidates {
			if u.Email != "" && strings.ToLower(u.Email) == lower {
				return &candidates[i]
			}
		}
	}

	if name == "" {
		return nil
	}
	lower := strings.ToLower(strings.TrimSpace(name))

	for i, u := range candidates {
		if strings.ToLower(u.Name) == lower {
			return &candidates[i]
		}
		if u.Email != "" {
			if local, _, ok := strings.Cut(strings.ToLower(u.Email), "@"); ok && local == lower {
				return &candidates[i]
			}
		}
	}

	singleWord := !strings.ContainsRune(lower, ' ')
	for i, u := range candidates {
		cand := strings.ToLower(u.Name)
		if strings.HasPrefix(cand, lower) || strings.Contains(cand, lower) {
			return &candidates[i]
		}
		if singleWord {
			if first, _, _ := strings.Cut(cand, " "); first == lower {
				return &candidates[i]
			}
		}
	}

	return nil
}
