package services

// Principal is the identity extracted from an already-verified credential.
// It never carries raw credentials; the transport layer builds it from
// validated JWT claims.
type Principal struct {
	UserID uint
	Email  string
}

// resolvePrincipal maps a principal to the internal user id it may act on.
func resolvePrincipal(p Principal) (uint, error) {
	if p.UserID == 0 {
		return 0, ErrAuthenticationMismatch
	}
	return p.UserID, nil
}
