package entities

import (
	"time"
)

// PermissionGrant is a granted permission set as remembered locally.
type PermissionGrant struct {
	IssuedAt    time.Time    `json:"issuedAt" yaml:"issued_at"`
	Context     string       `json:"permissionsContext" yaml:"context"`
	Permissions []Permission `json:"permissions" yaml:"permissions"`
	Expiry      int64        `json:"expiry" yaml:"expiry"`
	ChainID     uint64       `json:"chainId,omitempty" yaml:"chain_id,omitempty"`
}

// NewPermissionGrant records result as granted on chainID at issuedAt.
func NewPermissionGrant(result *IssuePermissionsReturnType, chainID uint64, issuedAt time.Time) PermissionGrant {
	return PermissionGrant{
		Context:     result.PermissionsContext,
		ChainID:     chainID,
		Expiry:      result.Expiry,
		Permissions: append([]Permission(nil), result.GrantedPermissions...),
		IssuedAt:    issuedAt,
	}
}

// ExpiryTime interprets an expiry timestamp as seconds, or as milliseconds
// when it is too large to be a plausible seconds value.
func ExpiryTime(expiry int64) time.Time {
	const msThreshold = int64(1e11)
	if expiry >= msThreshold {
		return time.UnixMilli(expiry)
	}
	return time.Unix(expiry, 0)
}

// ExpiresAt returns the grant's expiry as a time.
func (g PermissionGrant) ExpiresAt() time.Time {
	return ExpiryTime(g.Expiry)
}

// Expired reports whether the grant has lapsed at now.
func (g PermissionGrant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt())
}

// PermissionSet is a collection of grants keyed by permissions context.
type PermissionSet struct {
	Grants []PermissionGrant `json:"grants" yaml:"grants"`
}

// IsEmpty returns true if the set holds no grants.
func (s *PermissionSet) IsEmpty() bool {
	return s == nil || len(s.Grants) == 0
}

// Merge unions other into s. A grant whose context already exists replaces the
// stored one.
func (s *PermissionSet) Merge(other *PermissionSet) {
	if other == nil {
		return
	}
	for _, g := range other.Grants {
		s.Put(g)
	}
}

// Put adds or replaces the grant with g's context.
func (s *PermissionSet) Put(g PermissionGrant) {
	for i := range s.Grants {
		if s.Grants[i].Context == g.Context {
			s.Grants[i] = g
			return
		}
	}
	s.Grants = append(s.Grants, g)
}

// Find returns the grant with the given permissions context.
func (s *PermissionSet) Find(context string) (PermissionGrant, bool) {
	if s == nil {
		return PermissionGrant{}, false
	}
	for _, g := range s.Grants {
		if g.Context == context {
			return g, true
		}
	}
	return PermissionGrant{}, false
}

// Prune removes grants that have expired at now and returns how many were removed.
func (s *PermissionSet) Prune(now time.Time) int {
	if s == nil {
		return 0
	}
	kept := s.Grants[:0]
	for _, g := range s.Grants {
		if !g.Expired(now) {
			kept = append(kept, g)
		}
	}
	removed := len(s.Grants) - len(kept)
	s.Grants = kept
	return removed
}

// Active returns the grants still valid at now, leaving s untouched.
func (s *PermissionSet) Active(now time.Time) []PermissionGrant {
	if s == nil {
		return nil
	}
	var active []PermissionGrant
	for _, g := range s.Grants {
		if !g.Expired(now) {
			active = append(active, g)
		}
	}
	return active
}
