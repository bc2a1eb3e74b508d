// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

// DefaultScopeNamespace prefixes every scope salt.
const DefaultScopeNamespace = "stargate-images"

// ScopeKeyChain derives per-scope keys from the single application secret.
//
// Derivation is deterministic and uses no stored material: the salt is
// "<namespace>-<scopeID>". Every file in a scope shares one key, and whoever
// holds the application secret can derive every scope's key. This trade-off
// removes any key exchange between collaborators.
type ScopeKeyChain struct {
	provider  Provider
	secret    []byte
	namespace string
}

// NewScopeKeyChain constructs a [ScopeKeyChain]. An empty namespace selects
// [DefaultScopeNamespace].
func NewScopeKeyChain(provider Provider, appSecret, namespace string) *ScopeKeyChain {
	if namespace == "" {
		namespace = DefaultScopeNamespace
	}
	return &ScopeKeyChain{
		provider:  provider,
		secret:    []byte(appSecret),
		namespace: namespace,
	}
}

// ScopeSalt returns the salt used for scopeID.
func (k *ScopeKeyChain) ScopeSalt(scopeID string) []byte {
	return []byte(k.namespace + "-" + scopeID)
}

// DeriveScopeKey returns the key for scopeID. Callers should drop the key as
// soon as the operation that needed it is complete.
func (k *ScopeKeyChain) DeriveScopeKey(scopeID string) Key {
	return k.provider.DeriveKey(k.secret, k.ScopeSalt(scopeID))
}

// Provider returns the provider the key chain derives with.
func (k *ScopeKeyChain) Provider() Provider {
	return k.provider
}
