package family

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// SetParentPIN stores a bcrypt hash of the parent PIN in the document. The
// PIN gates the admin surface and approval of requiresApproval chores; it is
// not an account system. A PIN shorter than 4 digits is rejected as a no-op.
func (s *Service) SetParentPIN(ctx context.Context, pin string) (bool, error) {
	st, before, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	if len(pin) < 4 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	st.Settings.ParentPINHash = string(hash)

	return s.commit(ctx, st, before, "")
}

// VerifyParentPIN checks a PIN attempt against the stored hash. With no PIN
// set, verification succeeds; the gate is opt-in.
func (s *Service) VerifyParentPIN(ctx context.Context, pin string) (bool, error) {
	st, _, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if st.Settings.ParentPINHash == "" {
		return true, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(st.Settings.ParentPINHash), []byte(pin))
	return err == nil, nil
}
