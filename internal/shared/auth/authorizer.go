package auth

// Authorize decides whether p may mutate a resource recorded as added by owner.
// Admins may mutate anything, everyone else only what they added.
func Authorize(p *Principal, owner string) bool {
	if p == nil {
		return false
	}
	return p.Role == RoleAdmin || p.Address == owner
}

// RequireOwnerOrAdmin returns deny when Authorize rejects the caller.
// Callers must run their existence check first: missing resources are 404, not 403.
func RequireOwnerOrAdmin(p *Principal, owner string, deny error) error {
	if err := Require(p); err != nil {
		return err
	}
	if !Authorize(p, owner) {
		return deny
	}
	return nil
}

// OwnerFilter is the added_by value a data-layer delete must match.
// Empty means unrestricted.
func OwnerFilter(p *Principal) string {
	if p.IsAdmin() {
		return ""
	}
	return p.Address
}

// RequireActor checks a client supplied submitter address (bech32Address, added_by).
// Empty means "the caller"; anything else must equal the principal.
func RequireActor(p *Principal, claimed string, deny error) error {
	if err := Require(p); err != nil {
		return err
	}
	if claimed != "" && claimed != p.Address {
		return deny
	}
	return nil
}
